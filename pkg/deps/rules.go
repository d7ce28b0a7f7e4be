package deps

// Category names are the stable snake_case keys emitted in the context
// document.
const (
	CategoryStateManagement = "state_management"
	CategoryNetworking      = "networking"
	CategoryUI              = "ui"
	CategoryTesting         = "testing"
	CategoryDevTooling      = "dev_tooling"
	CategoryPlatform        = "platform"
	CategoryOther           = "other"
)

// categoryRule is one membership set in the priority-ordered category
// table. The first matching rule wins, which guarantees every dependency
// lands in exactly one category.
type categoryRule struct {
	name    string
	members map[string]bool
}

func members(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// categoryRules is evaluated in order. Extending a category means adding
// a member here, not adding code.
var categoryRules = []categoryRule{
	{CategoryStateManagement, members(
		"flutter_riverpod", "riverpod", "hooks_riverpod",
		"flutter_bloc", "bloc",
		"provider", "get", "getx", "mobx", "flutter_mobx", "redux",
	)},
	{CategoryNetworking, members(
		"dio", "http", "chopper", "retrofit", "graphql_flutter",
		"web_socket_channel", "grpc",
	)},
	{CategoryUI, members(
		"flutter_svg", "cached_network_image", "google_fonts",
		"lottie", "shimmer", "flutter_animate", "fl_chart",
	)},
	{CategoryTesting, members(
		"flutter_test", "test", "integration_test",
		"mockito", "mocktail", "golden_toolkit", "bloc_test",
	)},
	{CategoryDevTooling, members(
		"build_runner", "freezed", "json_serializable",
		"flutter_lints", "lints", "dart_code_metrics", "flutter_gen_runner",
	)},
	{CategoryPlatform, members(
		"shared_preferences", "path_provider", "url_launcher",
		"device_info_plus", "package_info_plus", "connectivity_plus",
		"permission_handler", "sqflite",
	)},
}

// exclusiveGroup describes packages that should not be declared together.
type exclusiveGroup struct {
	label   string
	members []string
}

// exclusiveGroups is a static rule table; two or more declared members of
// a group produce one conflict naming all matches.
var exclusiveGroups = []exclusiveGroup{
	{"state management", []string{"flutter_riverpod", "flutter_bloc", "provider", "get", "mobx", "redux"}},
	{"http client", []string{"dio", "chopper", "retrofit"}},
	{"code generation modeling", []string{"freezed", "built_value"}},
}

// testingDeps satisfy the "project declares a test framework" check.
var testingDeps = []string{"flutter_test", "test", "integration_test"}

// deprecatedDeps maps known-deprecated packages to their replacements.
var deprecatedDeps = map[string]string{
	"moor":           "drift",
	"pedantic":       "lints",
	"effective_dart": "lints",
	"flutter_driver": "integration_test",
}
