package entity

// PersonField enumera os campos que o sync grava numa pessoa do CRM.
type PersonField int

const (
	FieldEmail PersonField = iota
	FieldPhone
	FieldSiren
	FieldLinkedUserID
	FieldJobLabel

	PersonFieldCount
)

func (f PersonField) String() string {
	switch f {
	case FieldEmail:
		return "email"
	case FieldPhone:
		return "phone"
	case FieldSiren:
		return "siren"
	case FieldLinkedUserID:
		return "linkedUserId"
	case FieldJobLabel:
		return "jobLabel"
	default:
		return "unknown"
	}
}

type PersonProfile struct {
	Email        string
	Phone        string
	Siren        string
	LinkedUserID string
	JobLabel     string
}

func NewPersonProfile(u *User, siren string) PersonProfile {
	return PersonProfile{
		Email:        u.Email,
		Phone:        u.Phone,
		Siren:        siren,
		LinkedUserID: u.ID,
		JobLabel:     u.Job,
	}
}

// Fields devolve os valores indexados pelo enum, na ordem de PersonField.
func (p PersonProfile) Fields() [PersonFieldCount]string {
	return [PersonFieldCount]string{
		FieldEmail:        p.Email,
		FieldPhone:        p.Phone,
		FieldSiren:        p.Siren,
		FieldLinkedUserID: p.LinkedUserID,
		FieldJobLabel:     p.JobLabel,
	}
}
