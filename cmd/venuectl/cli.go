package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/admin"
	"github.com/ft-kumarsatyam/venue-management-system/internal/gateway"
	"github.com/ft-kumarsatyam/venue-management-system/internal/listview"
	"github.com/ft-kumarsatyam/venue-management-system/internal/refresh"
	"github.com/ft-kumarsatyam/venue-management-system/internal/store"
)

// passwordEnv lets scripts log in without the password showing in ps.
const passwordEnv = "VENUECTL_PASSWORD"

type tokenFile interface {
	Save(token string) error
	Clear() error
	Watch(ctx context.Context) error
}

type cli struct {
	gw     *gateway.Client
	tokens tokenFile
	admin  *admin.Client
	out    io.Writer
}

func (c *cli) close() {
	c.admin.Close()
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: venuectl <command> [flags]

commands:
  login       -email E [-password P]     store an access token
  logout                                 forget the stored token
  clusters    [-page N] [-search S] [-watch D]
  venues      [-cluster ID] [-page N] [-search S] [-watch D]
  zones       [-venue ID | -facility ID] [-page N] [-search S] [-watch D]
  facilities  [-venue ID] [-page N] [-search S] [-watch D]
  sport-types
  show        <kind> <id>
  create      <kind> -f record.json [-image path]
  update      <kind> <id> -f record.json [-image path]
  delete      <kind> <id>

kinds: cluster, venue, zone, facility
-watch refetches and reprints the list every D until interrupted.
`)
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.tokens.Clear()
	case "clusters":
		return c.listClusters(ctx, args)
	case "venues":
		return c.listVenues(ctx, args)
	case "zones":
		return c.listZones(ctx, args)
	case "facilities":
		return c.listFacilities(ctx, args)
	case "sport-types":
		return c.listSportTypes(ctx)
	case "show":
		return c.show(ctx, args)
	case "create":
		return c.mutate(ctx, "", args)
	case "update":
		if len(args) < 2 {
			return errors.New("update needs a kind and an id")
		}
		return c.mutate(ctx, args[1], append([]string{args[0]}, args[2:]...))
	case "delete":
		return c.remove(ctx, args)
	case "help", "-h", "--help":
		usage(c.out)
		return nil
	default:
		usage(c.out)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// message returns the text shown for err: the API message for gateway
// errors, every field for validation errors.
func message(err error) string {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		if gwErr.Kind == gateway.KindUnauthenticated {
			return gwErr.Message() + " (run venuectl login)"
		}
		return gwErr.Message()
	}
	return err.Error()
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (default $"+passwordEnv+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv(passwordEnv)
	}
	if *email == "" || *password == "" {
		return errors.New("login needs -email and a password")
	}

	s, err := c.gw.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := c.tokens.Save(s.AccessToken); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Fprintf(c.out, "logged in as %s\n", s.User.Email)
	return nil
}

// listFlags are the flags shared by every list command.
type listFlags struct {
	fs     *flag.FlagSet
	page   *int
	search *string
	watch  *time.Duration
}

func newListFlags(name string) listFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return listFlags{
		fs:     fs,
		page:   fs.Int("page", 1, "page number"),
		search: fs.String("search", "", "search term"),
		watch:  fs.Duration("watch", 0, "refetch and reprint at this interval"),
	}
}

// fetchList fetches the list described by the flags into v.
func fetchList[T store.Identifiable](ctx context.Context, v *listview.View[T], parent string, lf listFlags) (store.State[T], error) {
	if err := v.SetParent(ctx, parent); err != nil {
		return store.State[T]{}, err
	}
	if s := strings.TrimSpace(*lf.search); s != "" {
		if err := v.Search(ctx, s); err != nil {
			return store.State[T]{}, err
		}
	}
	if *lf.page > 1 {
		if err := v.GoToPage(ctx, *lf.page); err != nil {
			return store.State[T]{}, err
		}
	}
	return v.Store().Snapshot(), nil
}

// showList fetches and renders a list once, or keeps refetching it every
// -watch interval until ctx is done. While watching, the token file is
// watched too so a login from another terminal takes effect.
func showList[T store.Identifiable](ctx context.Context, c *cli, v *listview.View[T], parent string, lf listFlags, render func(store.State[T]) error) error {
	st, err := fetchList(ctx, v, parent, lf)
	if err != nil {
		return err
	}
	if err := render(st); err != nil {
		return err
	}
	if *lf.watch <= 0 {
		return nil
	}

	if err := c.tokens.Watch(ctx); err != nil {
		return fmt.Errorf("watch token file: %w", err)
	}
	ticker := time.NewTicker(*lf.watch)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := v.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(c.out, "error:", message(err))
			continue
		}
		if err := render(v.Store().Snapshot()); err != nil {
			return err
		}
	}
}

func (c *cli) listClusters(ctx context.Context, args []string) error {
	lf := newListFlags("clusters")
	if err := lf.fs.Parse(args); err != nil {
		return err
	}
	return showList(ctx, c, c.admin.Clusters.List, "", lf, func(st store.State[admin.Cluster]) error {
		tw := c.table("ID", "CODE", "NAME", "GEOFENCE", "VENUES")
		for _, cl := range st.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", cl.ID, cl.Code, cl.Name, cl.GeofencingType, cl.VenueCount)
		}
		return c.flush(tw, st.Pagination.CurrentPage, st.Pagination.TotalPages, st.Pagination.TotalItems)
	})
}

func (c *cli) listVenues(ctx context.Context, args []string) error {
	lf := newListFlags("venues")
	cluster := lf.fs.String("cluster", "", "only venues of this cluster")
	if err := lf.fs.Parse(args); err != nil {
		return err
	}

	v := c.admin.Venues.List
	if *cluster != "" {
		scoped, unmount := c.admin.Venues.Mount(refresh.Cluster)
		defer unmount()
		v = scoped
	}
	return showList(ctx, c, v, *cluster, lf, func(st store.State[admin.Venue]) error {
		tw := c.table("ID", "CODE", "NAME", "CLUSTER", "CAPACITY", "ADDRESS")
		for _, ve := range st.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", ve.ID, ve.Code, ve.Name, dash(ve.ClusterRef()), ve.Capacity, ve.Address)
		}
		return c.flush(tw, st.Pagination.CurrentPage, st.Pagination.TotalPages, st.Pagination.TotalItems)
	})
}

func (c *cli) listZones(ctx context.Context, args []string) error {
	lf := newListFlags("zones")
	venue := lf.fs.String("venue", "", "only zones of this venue")
	facility := lf.fs.String("facility", "", "only zones of this facility")
	if err := lf.fs.Parse(args); err != nil {
		return err
	}
	if *venue != "" && *facility != "" {
		return errors.New("use either -venue or -facility")
	}

	v, parent := c.admin.Zones.List, ""
	switch {
	case *venue != "":
		scoped, unmount := c.admin.Zones.Mount(refresh.Venue)
		defer unmount()
		v, parent = scoped, *venue
	case *facility != "":
		scoped, unmount := c.admin.Zones.Mount(refresh.Facility)
		defer unmount()
		v, parent = scoped, *facility
	}
	return showList(ctx, c, v, parent, lf, func(st store.State[admin.Zone]) error {
		tw := c.table("ID", "CODE", "NAME", "CAPACITY", "VENUES", "FACILITY", "COMMON")
		for _, z := range st.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%t\n",
				z.ID, z.Code, z.Name, z.Capacity, strings.Join(z.VenueIDs, ","), dash(z.FacilityRef()), z.CommonZoneStatus())
		}
		return c.flush(tw, st.Pagination.CurrentPage, st.Pagination.TotalPages, st.Pagination.TotalItems)
	})
}

func (c *cli) listFacilities(ctx context.Context, args []string) error {
	lf := newListFlags("facilities")
	venue := lf.fs.String("venue", "", "only facilities of this venue")
	if err := lf.fs.Parse(args); err != nil {
		return err
	}

	v := c.admin.Facilities.List
	if *venue != "" {
		scoped, unmount := c.admin.Facilities.Mount(refresh.Venue)
		defer unmount()
		v = scoped
	}
	return showList(ctx, c, v, *venue, lf, func(st store.State[admin.Facility]) error {
		tw := c.table("ID", "CODE", "VENUE", "SPORT TYPE", "CAPACITY", "AMENITIES", "ZONES")
		for _, f := range st.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%d\n",
				f.ID, f.Code, f.VenueID, f.SportTypeID, f.Capacity, strings.Join(f.Amenities, ","), len(f.ZoneIDs))
		}
		return c.flush(tw, st.Pagination.CurrentPage, st.Pagination.TotalPages, st.Pagination.TotalItems)
	})
}

func (c *cli) listSportTypes(ctx context.Context) error {
	items, err := c.admin.SportTypes.Load(ctx)
	if err != nil {
		return err
	}
	tw := c.table("ID", "NAME", "DESCRIPTION")
	for _, s := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Name, s.Description)
	}
	return tw.Flush()
}

func (c *cli) show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("show needs a kind and an id")
	}
	var (
		rec any
		err error
	)
	switch kind, id := args[0], args[1]; kind {
	case "cluster":
		rec, err = c.admin.Clusters.Select(ctx, id)
	case "venue":
		rec, err = c.admin.Venues.Select(ctx, id)
	case "zone":
		rec, err = c.admin.Zones.Select(ctx, id)
	case "facility":
		rec, err = c.admin.Facilities.Select(ctx, id)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// mutate creates a record, or updates record id when id is set. The record
// is read from a JSON file in the shape the API returns.
func (c *cli) mutate(ctx context.Context, id string, args []string) error {
	if len(args) < 1 {
		return errors.New("missing kind")
	}
	kind := args[0]
	fs := flag.NewFlagSet(kind, flag.ContinueOnError)
	file := fs.String("f", "", "JSON record file")
	image := fs.String("image", "", "image to upload")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("-f is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	var upload *admin.Upload
	if *image != "" {
		f, err := os.Open(*image)
		if err != nil {
			return err
		}
		defer f.Close()
		upload = &admin.Upload{Filename: filepath.Base(*image), Content: f}
	}

	var saved any
	switch kind {
	case "cluster":
		var rec admin.Cluster
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode %s: %w", *file, err)
		}
		form := admin.ClusterFormFrom(rec)
		form.Image = upload
		if id == "" {
			saved, err = c.admin.CreateCluster(ctx, form)
		} else {
			saved, err = c.admin.UpdateCluster(ctx, id, form)
		}
	case "venue":
		var rec admin.Venue
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode %s: %w", *file, err)
		}
		form := admin.VenueFormFrom(rec)
		form.Image = upload
		if id == "" {
			saved, err = c.admin.CreateVenue(ctx, form)
		} else {
			saved, err = c.admin.UpdateVenue(ctx, id, form)
		}
	case "zone":
		var rec admin.Zone
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode %s: %w", *file, err)
		}
		form := admin.ZoneFormFrom(rec)
		form.Image = upload
		if id == "" {
			saved, err = c.admin.CreateZone(ctx, form)
		} else {
			saved, err = c.admin.UpdateZone(ctx, id, form)
		}
	case "facility":
		var rec admin.Facility
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode %s: %w", *file, err)
		}
		if upload != nil {
			return errors.New("facilities have no image")
		}
		form := admin.FacilityFormFrom(rec)
		if id == "" {
			saved, err = c.admin.CreateFacility(ctx, form)
		} else {
			saved, err = c.admin.UpdateFacility(ctx, id, form)
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(saved)
}

func (c *cli) remove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("delete needs a kind and an id")
	}
	var err error
	switch kind, id := args[0], args[1]; kind {
	case "cluster":
		err = c.admin.DeleteCluster(ctx, id)
	case "venue":
		err = c.admin.DeleteVenue(ctx, id)
	case "zone":
		err = c.admin.DeleteZone(ctx, id)
	case "facility":
		err = c.admin.DeleteFacility(ctx, id)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deleted %s %s\n", args[0], args[1])
	return nil
}

func (c *cli) table(headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func (c *cli) flush(tw *tabwriter.Writer, page, pages, total int) error {
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "page %d of %d, %d total\n", page, max(pages, 1), total)
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
