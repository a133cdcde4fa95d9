package graphio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/distributed-btg/pkg/arp"
	"github.com/distributed-btg/pkg/btg"
	"github.com/distributed-btg/pkg/graph"
)

// WriteBTGResults writes one line per vertex, sorted by id:
//
//	<vertex-id> <btg-id>              transactional
//	<vertex-id> [<btg-id>,...]        master, membership ascending
//
// Vertices of unknown type are written with an empty membership-style block
// so every input vertex appears in the output.
func WriteBTGResults(path string, values map[graph.VertexID]*btg.VertexValue) error {
	ids := make([]graph.VertexID, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return writeLines(path, func(w *bufio.Writer) error {
		for _, id := range ids {
			value := values[id]
			var line string
			switch value.VertexType() {
			case graph.Transactional:
				line = fmt.Sprintf("%d %d", id, value.Label(id))
			case graph.Master:
				line = fmt.Sprintf("%d %s", id, formatIDList(value.MembershipSet(id)))
			default:
				line = fmt.Sprintf("%d []", id)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteARPResults writes `<vertex-id> <partition>` lines sorted by id, with
// a `[<partition>,...]` history block appended when withHistory is set.
func WriteARPResults(path string, values map[graph.VertexID]*arp.VertexValue, withHistory bool) error {
	ids := make([]graph.VertexID, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return writeLines(path, func(w *bufio.Writer) error {
		for _, id := range ids {
			value := values[id]
			line := fmt.Sprintf("%d %d", id, value.CurrentPartition)
			if withHistory {
				line += " " + formatIntList(value.PartitionHistory)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeLines(path string, write func(w *bufio.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := write(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Flush()
}

func formatIDList(ids []graph.VertexID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func formatIntList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
