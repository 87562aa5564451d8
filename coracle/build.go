package coracle

import (
	"fmt"
	"slices"

	"github.com/encodeous/topogen/state"
	"github.com/encodeous/topogen/topology"
)

// Build lays out a synthesized topology as a simulator document.
// Servers come first, then hubs, each by ascending id. Links are numbered from 1 in edge order.
// The first event brings every link and node up at time 0, configured events follow in time order.
func Build(t *topology.Topology, cfg *state.BuildCfg) (*Document, error) {
	doc := &Document{
		Termination: cfg.Termination,
		Consensus:   consensusOf(cfg.Consensus),
		Network: Network{
			Nodes:  make([]Node, 0, len(t.Nodes)),
			Links:  make([]Link, 0, len(t.Edges)),
			Events: make([]Event, 0, 1+len(cfg.Events)),
		},
	}
	for _, n := range t.Servers() {
		doc.Network.Nodes = append(doc.Network.Nodes, Node{Type: TypeServer, Id: int(n.Id)})
	}
	for _, n := range t.Hubs() {
		doc.Network.Nodes = append(doc.Network.Nodes, Node{Type: TypeHub, Id: int(n.Id)})
	}
	for i, e := range t.Edges {
		doc.Network.Links = append(doc.Network.Links, Link{
			Start:     int(e.A),
			End:       int(e.B),
			Id:        i + 1,
			Direction: DirectionBi,
			Distance:  e.Distance,
		})
	}

	doc.Network.Events = append(doc.Network.Events, nominal(doc))
	events, err := configured(doc, cfg.Events)
	if err != nil {
		return nil, err
	}
	doc.Network.Events = append(doc.Network.Events, events...)
	return doc, nil
}

// nominal activates everything at time 0
func nominal(doc *Document) Event {
	ev := Event{
		Time:  0,
		Links: make([]LinkState, 0, len(doc.Network.Links)),
		Nodes: make([]NodeState, 0, len(doc.Network.Nodes)),
	}
	for _, l := range doc.Network.Links {
		ev.Links = append(ev.Links, LinkState{Id: l.Id, Type: LinkTypeS, Active: true})
	}
	for _, n := range doc.Network.Nodes {
		ev.Nodes = append(ev.Nodes, NodeState{Id: n.Id, Active: true})
	}
	return ev
}

// configured groups the configured events by time. Events sharing a time keep their configured order.
func configured(doc *Document, cfgs []state.EventCfg) ([]Event, error) {
	nodes := make(map[int]struct{}, len(doc.Network.Nodes))
	for _, n := range doc.Network.Nodes {
		nodes[n.Id] = struct{}{}
	}

	sorted := slices.Clone(cfgs)
	slices.SortStableFunc(sorted, func(a, b state.EventCfg) int {
		return a.Time - b.Time
	})

	events := make([]Event, 0)
	for _, ec := range sorted {
		if ec.Time <= 0 {
			return nil, fmt.Errorf("%w: event at time %d, time 0 is reserved for the initial state", state.ErrInvalidConfig, ec.Time)
		}
		if len(events) == 0 || events[len(events)-1].Time != ec.Time {
			events = append(events, Event{
				Time:  ec.Time,
				Links: make([]LinkState, 0),
				Nodes: make([]NodeState, 0),
			})
		}
		ev := &events[len(events)-1]
		switch {
		case ec.Node != 0 && ec.Link == 0:
			if _, ok := nodes[ec.Node]; !ok {
				return nil, fmt.Errorf("%w: event at time %d references node %d which is not in the topology", state.ErrInvalidConfig, ec.Time, ec.Node)
			}
			ev.Nodes = append(ev.Nodes, NodeState{Id: ec.Node, Active: ec.Active})
		case ec.Link != 0 && ec.Node == 0:
			if ec.Link < 1 || ec.Link > len(doc.Network.Links) {
				return nil, fmt.Errorf("%w: event at time %d references link %d, the topology has %d links", state.ErrInvalidConfig, ec.Time, ec.Link, len(doc.Network.Links))
			}
			ev.Links = append(ev.Links, LinkState{Id: ec.Link, Type: LinkTypeS, Active: ec.Active})
		default:
			return nil, fmt.Errorf("%w: event at time %d must target exactly one node or link", state.ErrInvalidConfig, ec.Time)
		}
	}
	return events, nil
}
