package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const flowchartSystemPrompt = `You are a learning-path visualizer. Given roadmap metadata, produce a
flowchart for a visual editor as a JSON object:
{
  "nodes": [{"id": "", "label": "", "description": "", "content": "", "resources": [""], "redirectUrl": "", "x": 0, "y": 0, "color": ""}, ...],
  "edges": [{"id": "", "source": "", "target": "", "label": ""}, ...]
}
Produce between 15 and 25 nodes. Lay them out top-to-bottom with branching paths:
x in [0, 1200], y increasing by roughly 150 per tier. Color-code by difficulty:
green (#22c55e) for beginner nodes, amber (#f59e0b) for intermediate, red (#ef4444)
for advanced. Each node needs a short label, a one-line description, a longer content
blob, 1-3 resource links and a redirectUrl. Every edge's source and target must be
node ids from the nodes array.
Return valid JSON only. Do not wrap the output in markdown code blocks.`

// GenerateFlowchart synthesizes the node/edge graph for a roadmap. Edges that
// reference node IDs absent from the node list are pruned; Flowchart.DroppedEdges
// reports how many were removed.
func (s *Service) GenerateFlowchart(ctx context.Context, info RoadmapInfo) (*Flowchart, error) {
	var b strings.Builder
	b.WriteString("Build the learning-path flowchart for this roadmap.\n")
	b.WriteString("Title: " + info.Title + "\n")
	b.WriteString("Description: " + info.Description + "\n")
	if info.Difficulty != "" {
		b.WriteString("Difficulty: " + info.Difficulty + "\n")
	}
	if info.EstimatedTime != "" {
		b.WriteString("Estimated time: " + info.EstimatedTime + "\n")
	}
	if info.EducationLevel != "" {
		b.WriteString("Education level: " + info.EducationLevel + "\n")
	}
	if len(info.Technologies) > 0 {
		b.WriteString("Technologies: " + strings.Join(info.Technologies, ", ") + "\n")
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	raw, err := s.model.GenerateJSON(ctx, flowchartSystemPrompt, b.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("generate flowchart: %w", err)
	}

	var chart Flowchart
	if err := json.Unmarshal([]byte(raw), &chart); err != nil {
		return nil, fmt.Errorf("generate flowchart: decode model output: %w", err)
	}

	chart.pruneDanglingEdges()
	return &chart, nil
}

// pruneDanglingEdges removes edges whose source or target is not a known node ID.
func (c *Flowchart) pruneDanglingEdges() {
	known := make(map[string]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		known[n.ID] = struct{}{}
	}

	kept := c.Edges[:0]
	for _, e := range c.Edges {
		_, okSource := known[e.Source]
		_, okTarget := known[e.Target]
		if okSource && okTarget {
			kept = append(kept, e)
			continue
		}
		c.DroppedEdges++
	}
	c.Edges = kept
}
