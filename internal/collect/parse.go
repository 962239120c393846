// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// sourceDoc mirrors the translation project file. Images keep the order
// they appear in on disk.
type sourceDoc struct {
	Images *orderedmap.OrderedMap[string, imageDoc] `json:"images"`
}

type imageDoc struct {
	Boxes []boxDoc `json:"boxes"`
}

type boxDoc struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

// EngineFile is the parsed content of one engine's translation file.
type EngineFile struct {
	// Name is the engine name: the file's base name without extension.
	Name string

	// Path is the file the content was read from.
	Path string

	// Images lists the kept images in file order.
	Images []FileImage
}

// FileImage is one image of an engine file.
type FileImage struct {
	Name  string
	Boxes []FileBox
}

// FileBox is one box of an engine file.
type FileBox struct {
	Original string
	Target   string
}

// EngineName derives the engine name from a translation file path.
func EngineName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseFile reads and decodes one engine file. Images whose name contains
// tempMarker, or that have no boxes, are left out.
func ParseFile(path, tempMarker string) (EngineFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineFile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data, tempMarker)
	if err != nil {
		return EngineFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.Name = EngineName(path)
	f.Path = path
	return f, nil
}

// Parse decodes the JSON content of an engine file. Name and Path are left
// for the caller to fill in.
func Parse(data []byte, tempMarker string) (EngineFile, error) {
	doc := sourceDoc{Images: orderedmap.New[string, imageDoc]()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return EngineFile{}, err
	}

	var f EngineFile
	if doc.Images == nil {
		return f, nil
	}
	for pair := doc.Images.Oldest(); pair != nil; pair = pair.Next() {
		if skipImage(pair.Key, tempMarker) || len(pair.Value.Boxes) == 0 {
			continue
		}
		img := FileImage{Name: pair.Key, Boxes: make([]FileBox, len(pair.Value.Boxes))}
		for i, b := range pair.Value.Boxes {
			img.Boxes[i] = FileBox{Original: b.Text, Target: b.Target}
		}
		f.Images = append(f.Images, img)
	}
	return f, nil
}

func skipImage(name, tempMarker string) bool {
	return tempMarker != "" && strings.Contains(name, tempMarker)
}
