package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Database table names
	TableCentralUsers            = "users"
	TablePiazzaUsers             = "piazza_users"
	TableContentGoodTags         = "piazza_content_tag_good"
	TableContentHistory          = "piazza_content_history"
	TableContentChangeLog        = "piazza_content_change_log"
	TableContentChildren         = "piazza_content_children"
	TableContentChildEndorse     = "piazza_content_child_endorsement"
	TableContentChildHistory     = "piazza_content_child_history"
	TableContentChildSubchildren = "piazza_content_child_subchildren"

	// Redis key prefixes
	DatasetLockKeyPrefix = "modsoc:dataset-lock:"

	// Dataset lock scopes. The global scope excludes every dataset scope.
	LockScopeAll           = "all"
	LockScopeDatasetPrefix = "dataset:"
)
