package types

type BuildStream struct {
	Name   string   `json:"name" yaml:"name"`
	Builds []string `json:"builds" yaml:"builds"`
}
