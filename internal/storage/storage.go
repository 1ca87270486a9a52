package storage

// Keys under which the clicker state is persisted. The names match the
// original browser build so an exported localStorage dump loads as-is.
const (
	KeySessionEmail = "monkey_clicker_email"
	KeyTotalClicks  = "monkey_clicker_total_clicks"
	KeyAllUsersData = "monkey_clicker_all_users_data"
)

// KV is the persistence contract every other package goes through.
// Get reports absence (or an unreadable value) as ok=false rather than
// an error: readers are expected to fall back to empty state.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}
