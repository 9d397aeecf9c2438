package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/pkg/convert"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/aretw0/arbor/pkg/snapshot"
)

// ReplayOptions contains all the configuration for the replay command.
type ReplayOptions struct {
	EditorOptions
	ScriptPath string
	// Measure is the nominal node size used in place of a rendering host.
	Measure domain.Size
	// OutPath receives the final document; empty skips writing.
	OutPath string
	// Strict stops at the first rejected step.
	Strict bool
	Quiet  bool
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	Applied  int
	Rejected int
	Revision string
	Document *domain.MindMap
}

// Replay runs a command script against a document.
func Replay(opts ReplayOptions, out io.Writer) (*ReplayResult, error) {
	logger := CreateLogger(opts.Debug)

	data, err := os.ReadFile(opts.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	_, cmds, err := compiler.NewParser().Parse(data, schema.FormatFromPath(opts.ScriptPath))
	if err != nil {
		return nil, err
	}

	opts.Editable = true
	ed, err := CreateEditor(opts.EditorOptions, logger)
	if err != nil {
		return nil, err
	}
	if opts.Measure.Width > 0 {
		for _, id := range ed.Document().UUIDs() {
			ed.UpdateNodeSize(id, opts.Measure.Width, opts.Measure.Height, false)
		}
	}

	res := &ReplayResult{}
	for i, cmd := range cmds {
		outcome, err := Route(ed, cmd)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, cmd.Op(), err)
		}
		if outcome.Applied {
			res.Applied++
			if !opts.Quiet {
				fmt.Fprintf(out, "ok   %2d %-22s %s\n", i+1, cmd.Op(), describe(outcome))
			}
			continue
		}

		res.Rejected++
		if !opts.Quiet {
			fmt.Fprintf(out, "skip %2d %-22s %v\n", i+1, cmd.Op(), outcome.Err())
		}
		if opts.Strict {
			return res, fmt.Errorf("step %d (%s) rejected: %w", i+1, cmd.Op(), outcome.Err())
		}
	}

	res.Document = ed.Document()
	res.Revision, err = snapshot.Fingerprint(res.Document)
	if err != nil {
		return nil, err
	}
	printSystemMessage(out, "%d applied, %d rejected, revision %s", res.Applied, res.Rejected, res.Revision[:12])

	if opts.OutPath != "" {
		if err := WriteDocument(opts.OutPath, res.Document); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// WriteDocument writes m in hierarchical form, JSON or YAML by extension.
func WriteDocument(path string, m *domain.MindMap) error {
	raw, err := convert.FromMindMap(m)
	if err != nil {
		return err
	}
	data, err := schema.Encode(raw, schema.FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func describe(o domain.Outcome) string {
	if o.Change == nil {
		return ""
	}
	return o.Change.Description
}
