// Package sdf3 ingests SDF3 application-graph XML documents into an
// sdf.Mdsdf, mirroring the schema original_source's sdf3_xml_parser
// consumes: actors with typed ports, channels by actor/port name pairs,
// and per-actor execution times taken from the first default processor.
// SDF3 graphs are single-dimensional; the produced graph always has
// Dims() == 1.
package sdf3

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/gitrdm/sdfsched/internal/vecn"
	"github.com/gitrdm/sdfsched/sdf"
)

type sdf3Doc struct {
	XMLName          xml.Name            `xml:"sdf3"`
	ApplicationGraph applicationGraphXML `xml:"applicationGraph"`
}

type applicationGraphXML struct {
	Sdf           sdfXML           `xml:"sdf"`
	SdfProperties sdfPropertiesXML `xml:"sdfProperties"`
}

type sdfXML struct {
	Actors   []actorXML   `xml:"actor"`
	Channels []channelXML `xml:"channel"`
}

type actorXML struct {
	Name  string    `xml:"name,attr"`
	Ports []portXML `xml:"port"`
}

type portXML struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
	Rate int    `xml:"rate,attr"`
}

type channelXML struct {
	Name          string `xml:"name,attr"`
	SrcActor      string `xml:"srcActor,attr"`
	SrcPort       string `xml:"srcPort,attr"`
	DstActor      string `xml:"dstActor,attr"`
	DstPort       string `xml:"dstPort,attr"`
	InitialTokens *int   `xml:"initialTokens,attr"`
}

type sdfPropertiesXML struct {
	ActorProperties []actorPropertiesXML `xml:"actorProperties"`
}

type actorPropertiesXML struct {
	Actor      string         `xml:"actor,attr"`
	Processors []processorXML `xml:"processor"`
}

type processorXML struct {
	Type           string             `xml:"type,attr"`
	Default        bool               `xml:"default,attr"`
	ExecutionTimes []executionTimeXML `xml:"executionTime"`
}

type executionTimeXML struct {
	Time int `xml:"time,attr"`
}

// BufferChannel names a channel that had no initialTokens attribute: its
// token count becomes a buffer-sizing search variable, named after the
// channel, rather than a fixed constant. Unlike a channel with a known
// token count, it is never added to the parsed Mdsdf: its rates must
// already be implied by the graph's other channels, and package buffer
// appends its constraints directly to a built Formulation once the
// repetition vector is known.
type BufferChannel struct {
	Name        string
	Production  vecn.Vector
	Consumption vecn.Vector
	Source      int
	Target      int
}

// ParseResult is the built graph plus the side tables a caller needs to
// drive a MILP formulation: actor names (for diagnostics and LP export),
// execution times by actor, and the list of channels awaiting a buffer
// size.
type ParseResult struct {
	Graph          *sdf.Mdsdf
	ActorNames     map[int]string
	ExecutionTimes map[int]int
	BufferChannels []BufferChannel
}

// Parse reads one SDF3 application-graph document from r.
func Parse(r io.Reader) (*ParseResult, error) {
	var doc sdf3Doc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("sdf3: decode: %w", err)
	}

	actors := doc.ApplicationGraph.Sdf.Actors
	actorIndex := make(map[string]int, len(actors))
	names := make(map[int]string, len(actors))
	for i, a := range actors {
		actorIndex[a.Name] = i
		names[i] = a.Name
	}

	type portKey struct{ actor, port string }
	ports := make(map[portKey]int)
	for _, a := range actors {
		for _, p := range a.Ports {
			ports[portKey{a.Name, p.Name}] = p.Rate
		}
	}

	execTimes := make(map[int]int)
	for _, ap := range doc.ApplicationGraph.SdfProperties.ActorProperties {
		actor, ok := actorIndex[ap.Actor]
		if !ok {
			return nil, fmt.Errorf("sdf3: actorProperties references unknown actor %q", ap.Actor)
		}
		var chosen *processorXML
		for i := range ap.Processors {
			if ap.Processors[i].Default {
				chosen = &ap.Processors[i]
				break
			}
		}
		if chosen == nil {
			return nil, fmt.Errorf("sdf3: actor %q has no default processor", ap.Actor)
		}
		if len(chosen.ExecutionTimes) == 0 {
			return nil, fmt.Errorf("sdf3: actor %q's default processor has no executionTime", ap.Actor)
		}
		execTimes[actor] = chosen.ExecutionTimes[0].Time
	}

	g := sdf.New(len(actors), 1)
	var bufferChannels []BufferChannel
	for _, c := range doc.ApplicationGraph.Sdf.Channels {
		src, ok := actorIndex[c.SrcActor]
		if !ok {
			return nil, fmt.Errorf("sdf3: channel %q references unknown source actor %q", c.Name, c.SrcActor)
		}
		dst, ok := actorIndex[c.DstActor]
		if !ok {
			return nil, fmt.Errorf("sdf3: channel %q references unknown target actor %q", c.Name, c.DstActor)
		}
		prodRate, ok := ports[portKey{c.SrcActor, c.SrcPort}]
		if !ok {
			return nil, fmt.Errorf("sdf3: channel %q references unknown source port %q", c.Name, c.SrcPort)
		}
		consRate, ok := ports[portKey{c.DstActor, c.DstPort}]
		if !ok {
			return nil, fmt.Errorf("sdf3: channel %q references unknown target port %q", c.Name, c.DstPort)
		}

		// A channel with no initialTokens attribute still has its rates
		// enter the base graph's balance equations: only its token count
		// is unresolved. It is added to g with a placeholder concrete
		// count of 0 (mirroring original_source/sdf3_xml_parser's own
		// placeholder) so ToHsdf's repetition-vector computation sees the
		// channel's row; package buffer layers the real, symbolic
		// constraint on top once the repetition vector is known.
		initialTokens := 0
		if c.InitialTokens != nil {
			initialTokens = *c.InitialTokens
		}
		g.AddChannel(sdf.Channel{
			Production:    vecn.Of(prodRate),
			Consumption:   vecn.Of(consRate),
			Source:        src,
			Target:        dst,
			InitialTokens: vecn.Of(initialTokens),
		})

		if c.InitialTokens == nil {
			bufferChannels = append(bufferChannels, BufferChannel{
				Name:        c.Name,
				Production:  vecn.Of(prodRate),
				Consumption: vecn.Of(consRate),
				Source:      src,
				Target:      dst,
			})
		}
	}

	return &ParseResult{
		Graph:          g,
		ActorNames:     names,
		ExecutionTimes: execTimes,
		BufferChannels: bufferChannels,
	}, nil
}
