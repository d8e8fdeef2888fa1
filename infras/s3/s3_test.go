package s3_test

import (
	"salon/config"
	"salon/infras/otel/mocks"
	"salon/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "salon"
	cfg.External.S3.PublicDomain = "https://cdn.example.com"
	cfg.External.S3.APIEndpoint = "https://storage.example.com"
	cfg.External.S3.Region = "auto"

	storage := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.example.com/masters/m-1.png", want: "masters/m-1.png"},
		{name: "api endpoint", url: "https://storage.example.com/salon/masters/m-1.png", want: "masters/m-1.png"},
		{name: "foreign host", url: "https://elsewhere.example.com/m-1.png", want: ""},
		{name: "empty", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.ObjectKey(tt.url))
		})
	}
}
