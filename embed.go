package webark

import (
	"embed"
	"io/fs"
)

//go:embed embedded/*
var embedded embed.FS

// embeddedAssets holds the stylesheet shipped with the default views.
func embeddedAssets() fs.FS {
	sub, err := fs.Sub(embedded, "embedded")
	if err != nil {
		panic(err)
	}
	return sub
}
