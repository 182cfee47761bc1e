package session

import (
	"strconv"
	"strings"
)

// Route paths.
const (
	RouteLogin      = "/"
	RouteSignup     = "/signup"
	RouteDashboard  = "/dashboard"
	RouteJobs       = "/jobs"
	RouteJob        = "/jobs/:id"
	RouteCandidates = "/candidates"
	RouteCandidate  = "/candidates/:id"
	RouteMatch      = "/resume/:resumeId/match"
)

type routeDef struct {
	pattern   string
	protected bool
}

var routeTable = []routeDef{
	{RouteLogin, false},
	{RouteSignup, false},
	{RouteDashboard, true},
	{RouteJobs, true},
	{RouteJob, true},
	{RouteCandidates, true},
	{RouteCandidate, true},
	{RouteMatch, true},
}

// Route is a resolved path.
type Route struct {
	Pattern   string
	Path      string
	Params    map[string]string
	Protected bool
}

// ID returns the numeric value of param, or 0 when absent or not a number.
func (r Route) ID(param string) int64 {
	id, err := strconv.ParseInt(r.Params[param], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Resolve matches path against the route table. Query strings and trailing
// slashes are ignored. Unknown paths resolve to the login route.
func Resolve(path string) Route {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}

	for _, def := range routeTable {
		if params, ok := match(def.pattern, path); ok {
			return Route{Pattern: def.pattern, Path: path, Params: params, Protected: def.protected}
		}
	}
	return Route{Pattern: RouteLogin, Path: RouteLogin}
}

func match(pattern, path string) (map[string]string, bool) {
	pp := strings.Split(pattern, "/")
	ps := strings.Split(path, "/")
	if len(pp) != len(ps) {
		return nil, false
	}
	var params map[string]string
	for i := range pp {
		if strings.HasPrefix(pp[i], ":") {
			if ps[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[pp[i][1:]] = ps[i]
			continue
		}
		if pp[i] != ps[i] {
			return nil, false
		}
	}
	return params, true
}

// Guard decides which route to render for a requested path.
type Guard struct {
	session *Session
}

// NewGuard returns a guard over s.
func NewGuard(s *Session) *Guard {
	return &Guard{session: s}
}

// Enter resolves path and returns the route to render. Protected routes
// redirect to login when no token is present; redirected is true in that case.
func (g *Guard) Enter(path string) (route Route, redirected bool) {
	route = Resolve(path)
	if route.Protected && !g.session.Authenticated() {
		return Resolve(RouteLogin), true
	}
	return route, false
}

// CandidatePath returns the detail route of a candidate.
func CandidatePath(id int64) string {
	return RouteCandidates + "/" + strconv.FormatInt(id, 10)
}

// JobPath returns the detail route of a job.
func JobPath(id int64) string {
	return RouteJobs + "/" + strconv.FormatInt(id, 10)
}

// MatchPath returns the match analysis route of a resume.
func MatchPath(resumeID int64) string {
	return "/resume/" + strconv.FormatInt(resumeID, 10) + "/match"
}
