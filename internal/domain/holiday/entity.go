package holiday

import "time"

type Holiday struct {
	ID        string
	CompanyID string
	Name      string
	Date      time.Time
	Type      Type
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Type string

const (
	TypeRegular           Type = "Regular Holiday"
	TypeSpecialWorking    Type = "Special Working"
	TypeSpecialNonWorking Type = "Special Non Working"
)

var TypeValues = []string{
	string(TypeRegular),
	string(TypeSpecialWorking),
	string(TypeSpecialNonWorking),
}
