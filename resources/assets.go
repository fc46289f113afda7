package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	iconDir   = "icons/"
	topicsDir = "topics/"
)

//go:embed icons/*.svg
var iconFS embed.FS

//go:embed topics/*.md
var topicsFS embed.FS

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Topics returns the training notes in markdown for lang, falling back to
// English.
func Topics(lang string) string {
	data, err := topicsFS.ReadFile(topicsDir + lang + ".md")
	if err != nil {
		data, err = topicsFS.ReadFile(topicsDir + "en.md")
		if err != nil {
			return ""
		}
	}
	return string(data)
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
