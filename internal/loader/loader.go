// Package loader reads a deployment document from disk and hands it to the
// front-end matching its file extension.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/ctrldeploy/internal/ctxlog"
	"github.com/specialistvlad/ctrldeploy/internal/element"
	"github.com/specialistvlad/ctrldeploy/internal/fsutil"
	"github.com/specialistvlad/ctrldeploy/internal/hcldoc"
	"github.com/specialistvlad/ctrldeploy/internal/xmldoc"
	"github.com/specialistvlad/ctrldeploy/internal/yamldoc"
)

// BaseName is the file name (without extension) looked up when a directory
// is given instead of a file.
const BaseName = "controller"

// Extensions lists the supported document extensions.
var Extensions = []string{".xml", ".hcl", ".yaml", ".yml"}

// Loader loads deployment documents.
type Loader struct {
	// Variables are exposed to HCL documents as var.<name>.
	Variables map[string]string
}

// NewLoader creates a loader.
func NewLoader(vars map[string]string) *Loader {
	return &Loader{Variables: vars}
}

// Load reads the deployment document at path. If path is a directory it must
// contain exactly one controller.{xml,hcl,yaml,yml} file.
func (l *Loader) Load(ctx context.Context, path string) (element.Document, error) {
	logger := ctxlog.FromContext(ctx)

	file, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Deployment document resolved.", "path", file)

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	var doc element.Document
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xml":
		doc, err = xmldoc.Parse(bytes.NewReader(data))
	case ".hcl":
		doc, err = hcldoc.Parse(data, file, hcldoc.WithStringVariables(l.Variables))
	case ".yaml", ".yml":
		doc, err = yamldoc.Parse(data)
	default:
		return nil, fmt.Errorf("unsupported deployment file %s: expected one of %s", file, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", file, err)
	}

	logger.Debug("Deployment document parsed.", "path", file, "root", doc.Root().Name())
	return doc, nil
}

func (l *Loader) resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	files, err := fsutil.FindFilesByBaseName(path, BaseName, Extensions...)
	if err != nil {
		return "", fmt.Errorf("error reading directory %s: %w", path, err)
	}
	switch len(files) {
	case 0:
		return "", fmt.Errorf("no %s document found in %s", BaseName, path)
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("ambiguous deployment in %s: found %s", path, strings.Join(files, ", "))
	}
}
