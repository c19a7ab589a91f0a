package pipedrive

import "github.com/xavierca1/georges-crm-sync/internal/entity"

// Chaves dos campos customizados no CRM. São identificadores opacos do lado do Pipedrive.
const (
	SirenFieldKey        = "2d89a2a3c44faab761afe9043da4d40da3538adb"
	LinkedUserIDFieldKey = "8254d58243c8cf10f258ca054b7bc08582407491"
	JobLabelFieldKey     = "1f2fa3f0c10305458b57ab0cdfeda1915802cfe2"
)

var personFieldKeys = [entity.PersonFieldCount]string{
	entity.FieldEmail:        "email",
	entity.FieldPhone:        "phone",
	entity.FieldSiren:        SirenFieldKey,
	entity.FieldLinkedUserID: LinkedUserIDFieldKey,
	entity.FieldJobLabel:     JobLabelFieldKey,
}

// personPayload deixa de fora campos vazios para não apagar o que já está no CRM.
func personPayload(p entity.PersonProfile) map[string]string {
	values := p.Fields()
	payload := make(map[string]string, len(values))
	for field, value := range values {
		if value == "" {
			continue
		}
		payload[personFieldKeys[field]] = value
	}
	return payload
}
