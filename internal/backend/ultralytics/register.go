package ultralytics

import (
	"io"

	"github.com/ekisa-team/yoloconv/internal/backend"
	"github.com/ekisa-team/yoloconv/internal/model"
)

// Register installs the toolkit adapters for every supported route.
func Register(reg *backend.Registry, python Interpreter, out io.Writer) error {
	exporter := NewModelExporter(python, out)
	converter := NewEngineConverter(python, out)

	routes := []struct {
		route    backend.Route
		exporter backend.Exporter
	}{
		{backend.Route{Kind: model.KindCheckpoint, Format: model.FormatONNX}, exporter},
		{backend.Route{Kind: model.KindCheckpoint, Format: model.FormatEngine}, exporter},
		{backend.Route{Kind: model.KindONNX, Format: model.FormatEngine}, converter},
	}

	for _, r := range routes {
		if err := reg.Register(r.route, r.exporter); err != nil {
			return err
		}
	}

	return nil
}
