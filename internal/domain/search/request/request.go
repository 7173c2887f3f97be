package request

// Page size limits, owned here so every endpoint uses the same constants.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Request holds validated search parameters. The limit is clamped, never
// rejected: out-of-range values are a caller convenience problem, not an
// error.
type Request struct {
	query  string
	cursor string
	limit  int
}

// New normalizes search parameters. limit <= 0 falls back to the default;
// anything above MaxPageSize is clamped down to it.
func New(query, cursor string, limit int) Request {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Request{query: query, cursor: cursor, limit: limit}
}

// Query returns the raw (un-normalized) query text.
func (r Request) Query() string { return r.query }

// Cursor returns the opaque cursor token, empty for the first page.
func (r Request) Cursor() string { return r.cursor }

// Limit returns the clamped page size, always in [1, MaxPageSize].
func (r Request) Limit() int { return r.limit }
