package physical

// Visitor defines the interface for objects that can visit each type of
// node in a converted plan. It implements the Visitor pattern, providing
// type-specific visit methods for each concrete node type.
type Visitor interface {
	VisitScan(*Scan) error
	VisitFilter(*Filter) error
	VisitProject(*Project) error
	VisitSort(*Sort) error
	VisitAggregate(*Aggregate) error
}
