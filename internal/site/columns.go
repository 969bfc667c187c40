package site

// columns are the site fields as stored in the clusters and venues tables,
// in the order of Values and Scanner.Dest.
var columns = []string{
	"code", "name", "description", "geofencing_type", "latitude", "longitude", "radius", "polygon",
	"supervisor_name", "supervisor_contact", "supervisor_email", "image_url",
}

// Columns returns the site columns qualified by alias, e.g. "c.code".
func Columns(alias string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		if alias != "" {
			c = alias + "." + c
		}
		out[i] = c
	}
	return out
}

// Values returns the column values of i in Columns order.
func (i Info) Values() ([]any, error) {
	polygon, err := EncodePolygon(i.Polygon)
	if err != nil {
		return nil, err
	}
	var lat, lng *float64
	if i.Coordinates != nil {
		lat, lng = &i.Coordinates.Lat, &i.Coordinates.Lng
	}
	return []any{
		i.Code, i.Name, i.Description, string(i.Type), lat, lng, i.Radius, polygon,
		i.Supervisor.Name, i.Supervisor.Contact, i.Supervisor.Email, i.ImageURL,
	}, nil
}

// SetMap returns the columns and values for an UPDATE.
func (i Info) SetMap() (map[string]any, error) {
	values, err := i.Values()
	if err != nil {
		return nil, err
	}
	m := make(map[string]any, len(columns))
	for idx, c := range columns {
		m[c] = values[idx]
	}
	return m, nil
}

// Scanner receives a row's site columns and assembles them into an Info.
type Scanner struct {
	info     *Info
	typ      string
	lat, lng *float64
	polygon  []byte
}

func NewScanner(info *Info) *Scanner {
	return &Scanner{info: info}
}

// Dest returns the scan targets in Columns order.
func (s *Scanner) Dest() []any {
	i := s.info
	return []any{
		&i.Code, &i.Name, &i.Description, &s.typ, &s.lat, &s.lng, &i.Radius, &s.polygon,
		&i.Supervisor.Name, &i.Supervisor.Contact, &i.Supervisor.Email, &i.ImageURL,
	}
}

// Finish completes the Info after Scan.
func (s *Scanner) Finish() error {
	s.info.Type = GeofencingType(s.typ)
	if s.lat != nil && s.lng != nil {
		s.info.Coordinates = &Coordinates{Lat: *s.lat, Lng: *s.lng}
	}
	p, err := DecodePolygon(s.polygon)
	if err != nil {
		return err
	}
	s.info.Polygon = p
	return nil
}
