package main

import (
	"flag"
	"log"

	"github.com/distributed-btg/pkg/bsp"
	"github.com/distributed-btg/pkg/graphio"
)

func main() {
	var (
		vertexPath    = flag.String("vertices", "data/vertices.csv", "Path to the vertex CSV (id,type)")
		edgePath      = flag.String("edges", "data/edges.csv", "Path to the edge CSV (source,target)")
		outputPath    = flag.String("output", "out/btg.txt", "Path for the result file")
		maxSupersteps = flag.Int("max-supersteps", 100, "Superstep safety limit (0 = unlimited)")
	)
	flag.Parse()

	log.Printf("Starting standalone BTG extraction")

	g, err := graphio.LoadGraph(*vertexPath, *edgePath)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	log.Printf("Loaded graph: %d vertices, %d edges", g.VertexCount(), g.EdgeCount())

	executor := bsp.NewExecutor(g, *maxSupersteps)
	supersteps, err := executor.Run()
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	if err := graphio.WriteBTGResults(*outputPath, executor.Values()); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}

	log.Printf("=== EXTRACTION COMPLETE ===")
	log.Printf("Supersteps: %d", supersteps)
	log.Printf("Results: %s", *outputPath)
}
