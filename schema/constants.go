package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DerivativeOrder selects which discrete derivative a critical point is taken from.
	DerivativeOrder string

	// CriticalKind labels a critical point.
	CriticalKind string

	// ChartView selects which signal the chart plots.
	ChartView string

	// DatabaseBackend represents the database backend for the sample store.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// Derivative orders. BothOrders is only meaningful to the CLI.
const (
	FirstOrder  DerivativeOrder = "first"
	SecondOrder DerivativeOrder = "second"
	BothOrders  DerivativeOrder = "both"
)

// Critical point kinds.
const (
	StationaryKind CriticalKind = "stationary" // first derivative is zero
	InflectionKind CriticalKind = "inflection" // second derivative is zero
)

// Chart views.
const (
	ValuesView ChartView = "values" // default
	FirstView  ChartView = "first"
	SecondView ChartView = "second"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// MaxSeries is the number of named series a single run compares.
const MaxSeries = 2

// DefaultBucketMinutes is the slot width raw posts are counted into.
const DefaultBucketMinutes = 10

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDerivativeOrders lists all orders accepted on the command line.
var ValidDerivativeOrders = map[DerivativeOrder]struct{}{
	FirstOrder:  {},
	SecondOrder: {},
	BothOrders:  {},
}

// ValidChartViews lists all valid chart views.
var ValidChartViews = map[ChartView]struct{}{
	ValuesView: {},
	FirstView:  {},
	SecondView: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// KindFor returns the critical point kind produced by a derivative order.
func KindFor(order DerivativeOrder) CriticalKind {
	if order == SecondOrder {
		return InflectionKind
	}
	return StationaryKind
}

// Expand turns BothOrders into its two concrete orders.
func (o DerivativeOrder) Expand() []DerivativeOrder {
	if o == BothOrders {
		return []DerivativeOrder{FirstOrder, SecondOrder}
	}
	return []DerivativeOrder{o}
}
