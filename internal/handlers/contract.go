package handlers

// TitleID is the id of the create-room dialog heading
const TitleID = "create-room-title"

// Contract controls which accessibility attributes the lobby renders.
// The zero value renders the full contract; each field breaks one part of it.
type Contract struct {
	OmitRefreshLabel  bool
	HideEmptyState    bool
	NonModalDialog    bool
	LabelledBy        string
	OmitRoomNameLabel bool
}

func (c Contract) labelledBy() string {
	if c.LabelledBy != "" {
		return c.LabelledBy
	}
	return TitleID
}
