package database

import "github.com/xavierca1/georges-crm-sync/internal/entity"

type userRow struct {
	ID         string
	Email      string
	Phone      string
	Job        string
	Subscribed bool
}

func toUser(row userRow, bankAccounts int64) *entity.User {
	return &entity.User{
		ID:             row.ID,
		Email:          row.Email,
		Phone:          row.Phone,
		Job:            row.Job,
		IsSubscribed:   row.Subscribed,
		HasBankAccount: bankAccounts > 0,
	}
}

// mongoUser espelha o documento da coleção users.
type mongoUser struct {
	ID     string `bson:"_id"`
	Emails []struct {
		Address string `bson:"address"`
	} `bson:"emails"`
	Profile struct {
		Phone string `bson:"phone"`
		Job   string `bson:"job"`
	} `bson:"profile"`
	Stripe struct {
		Plan any `bson:"plan"`
	} `bson:"stripe"`
}

func (u mongoUser) row() userRow {
	row := userRow{
		ID:         u.ID,
		Phone:      u.Profile.Phone,
		Job:        u.Profile.Job,
		Subscribed: isSet(u.Stripe.Plan),
	}
	if len(u.Emails) > 0 {
		row.Email = u.Emails[0].Address
	}
	return row
}

// isSet segue a regra "plano presente e não vazio".
func isSet(v any) bool {
	switch p := v.(type) {
	case nil:
		return false
	case string:
		return p != ""
	case bool:
		return p
	case int32:
		return p != 0
	case int64:
		return p != 0
	case float64:
		return p != 0
	default:
		return true
	}
}
