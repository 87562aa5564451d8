package coracle

import (
	"math"
)

// Summary describes a written document without the node positions, which the simulator format omits
type Summary struct {
	Servers      int     `yaml:"servers"`
	Hubs         int     `yaml:"hubs"`
	Links        int     `yaml:"links"`
	Events       int     `yaml:"events"`
	MeanDistance float64 `yaml:"mean_distance"`
	MaxDistance  float64 `yaml:"max_distance"`
	MinDegree    int     `yaml:"min_degree"`
	MaxDegree    int     `yaml:"max_degree"`
}

func (d *Document) Summarize() Summary {
	s := Summary{
		Servers: len(d.Servers()),
		Hubs:    len(d.Hubs()),
		Links:   len(d.Network.Links),
		Events:  len(d.Network.Events),
	}
	deg := make(map[int]int, len(d.Network.Nodes))
	for _, n := range d.Network.Nodes {
		deg[n.Id] = 0
	}
	total := 0.0
	for _, l := range d.Network.Links {
		total += l.Distance
		s.MaxDistance = math.Max(s.MaxDistance, l.Distance)
		deg[l.Start]++
		deg[l.End]++
	}
	if s.Links != 0 {
		s.MeanDistance = total / float64(s.Links)
	}
	if len(deg) != 0 {
		s.MinDegree = math.MaxInt
	}
	for _, v := range deg {
		s.MinDegree = min(s.MinDegree, v)
		s.MaxDegree = max(s.MaxDegree, v)
	}
	return s
}
