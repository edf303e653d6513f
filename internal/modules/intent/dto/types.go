package dto

type OpenInput struct {
	URL    string `json:"url" doc:"URL or shared text to open"`
	Source string `json:"source,omitempty" enum:"none,user_entered,view,share,home_screen,menu" doc:"How the URL reached the shell"`
}

type OpenOutput struct {
	URL    string `json:"url"`
	Source string `json:"source"`
}
