package report

type Filter struct {
	From         *string
	To           *string
	DepartmentID *int
}
