package ontap

// Request describes one REST call against the /api tree of a target.
type Request struct {
	// Method is one of GET, POST, PATCH, DELETE.
	Method string

	// Path is the resource path below the fixed /api prefix, e.g.
	// "/storage/volumes". Ignored when Href is set.
	Path string

	// Body is the JSON request body. It is never sent for GET or DELETE.
	Body map[string]any

	// Query holds query parameters. An empty map is omitted entirely rather
	// than sent as a bare "?".
	Query map[string]string

	// Href, when set, is used verbatim after "https://{host}:{port}" instead
	// of the /api prefix and Path. Pagination links already embed the full
	// path and cursor query string.
	Href string
}
