package entity

// ArtifactUpload is a rendered report ready to be posted to a channel.
type ArtifactUpload struct {
	Channel  string
	Filename string
	Title    string
	Comment  string
	Content  []byte
}
