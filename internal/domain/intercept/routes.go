package intercept

import "strings"

// Request is the descriptor a route responder sees: the request path and
// the remainder after the matched prefix (empty for exact matches).
type Request struct {
	Path string
	Rest string
}

// Response is a synthetic reply built from fixture data.
type Response struct {
	Status int
	Body   interface{}
}

// Responder produces a synthetic response for a matched request.
type Responder func(req Request) Response

// Route pairs a pattern with its responder. Patterns are matched in
// registration order; exact routes require the full path, prefix routes
// hand the remainder to the responder.
type Route struct {
	Pattern string
	Exact   bool
	Respond Responder
}

// NotFound is the fall-through reply when no route matches.
func NotFound() Response {
	return Response{Status: 404, Body: map[string]interface{}{"detail": "Not found"}}
}

// Routes derives the ordered route table from a fixture store.
func Routes(store *Store) []Route {
	return []Route{
		{
			Pattern: "/health",
			Exact:   true,
			Respond: func(Request) Response {
				return Response{Status: 200, Body: map[string]interface{}{"status": "healthy"}}
			},
		},
		{
			Pattern: "/api/faculty",
			Exact:   true,
			Respond: func(Request) Response {
				return Response{Status: 200, Body: store.Faculty}
			},
		},
		{
			Pattern: "/api/faculty/",
			Respond: func(req Request) Response {
				id, sub := splitRest(req.Rest)
				faculty, ok := store.facultyByID(id)
				if !ok {
					return NotFound()
				}
				switch sub {
				case "":
					return Response{Status: 200, Body: faculty}
				case "reputation":
					return Response{Status: 200, Body: map[string]interface{}{
						"score":           faculty.ReputationScore,
						"h_index":         faculty.HIndex,
						"total_citations": faculty.TotalCitations,
					}}
				case "publications":
					return Response{Status: 200, Body: faculty.Publications}
				default:
					return NotFound()
				}
			},
		},
		{
			Pattern: "/entity/",
			Respond: func(req Request) Response {
				id, sub := splitRest(req.Rest)
				if sub != "" {
					return NotFound()
				}
				entity, ok := store.Entities[id]
				if !ok {
					return NotFound()
				}
				return Response{Status: 200, Body: entity}
			},
		},
	}
}

// splitRest separates the identifier suffix from any trailing sub-path.
func splitRest(rest string) (id, sub string) {
	parts := strings.SplitN(rest, "/", 2)
	id = parts[0]
	if len(parts) == 2 {
		sub = strings.TrimSuffix(parts[1], "/")
	}
	return id, sub
}
