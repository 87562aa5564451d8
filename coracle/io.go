package coracle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/encodeous/topogen/state"
)

func Write(w io.Writer, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Write(f, doc); err != nil {
		return err
	}
	return f.Close()
}

// Read decodes a document and checks that every link and event refers to a declared node or link
func Read(r io.Reader) (*Document, error) {
	doc := &Document{}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", state.ErrInvalidConfig, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) Validate() error {
	nodes := make(map[int]struct{}, len(d.Network.Nodes))
	for _, n := range d.Network.Nodes {
		if n.Type != TypeServer && n.Type != TypeHub {
			return fmt.Errorf("%w: node %d has unknown type %q", state.ErrInvalidConfig, n.Id, n.Type)
		}
		if _, ok := nodes[n.Id]; ok {
			return fmt.Errorf("%w: duplicate node %d", state.ErrInvalidConfig, n.Id)
		}
		nodes[n.Id] = struct{}{}
	}
	links := make(map[int]struct{}, len(d.Network.Links))
	for _, l := range d.Network.Links {
		if _, ok := links[l.Id]; ok {
			return fmt.Errorf("%w: duplicate link %d", state.ErrInvalidConfig, l.Id)
		}
		links[l.Id] = struct{}{}
		for _, end := range []int{l.Start, l.End} {
			if _, ok := nodes[end]; !ok {
				return fmt.Errorf("%w: link %d references unknown node %d", state.ErrInvalidConfig, l.Id, end)
			}
		}
	}
	for _, ev := range d.Network.Events {
		for _, l := range ev.Links {
			if _, ok := links[l.Id]; !ok {
				return fmt.Errorf("%w: event at time %d references unknown link %d", state.ErrInvalidConfig, ev.Time, l.Id)
			}
		}
		for _, n := range ev.Nodes {
			if _, ok := nodes[n.Id]; !ok {
				return fmt.Errorf("%w: event at time %d references unknown node %d", state.ErrInvalidConfig, ev.Time, n.Id)
			}
		}
	}
	return nil
}
