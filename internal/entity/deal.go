package entity

type Deal struct {
	ID      string  `json:"id"`
	StageID StageID `json:"stage_id"`
}
