package dto

type PinInput struct {
	URL        string
	Title      string
	Screenshot []byte
}

type TileOutput struct {
	ID        string
	URL       string
	Title     string
	Kind      string
	Thumbnail string
}
