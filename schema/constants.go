package schema

// Custom string types for type safety.
type (
	// Period represents a fixed reporting window.
	Period string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for storage.
	DatabaseBackend string
)

// All reporting periods supported.
const (
	WeekPeriod  Period = "week" // default
	MonthPeriod Period = "month"
	YearPeriod  Period = "year"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// MemoryDBPath is the sentinel database path that selects a transient
// in-memory SQLite instance. Used by tests and throwaway runs.
const MemoryDBPath = ":memory:"

// AllPeriods returns the periods in export order.
var AllPeriods = []Period{WeekPeriod, MonthPeriod, YearPeriod}

// ValidPeriods lists all valid reporting periods.
var ValidPeriods = map[Period]struct{}{
	WeekPeriod:  {},
	MonthPeriod: {},
	YearPeriod:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
