package output

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/delta/pkg/keyed"
	"github.com/agentstation/delta/pkg/multiset"
	"github.com/agentstation/delta/pkg/ordered"
)

// OrderedToTableData converts an edit script to table format.
func OrderedToTableData[T any](changes []ordered.Change[T]) Data {
	rows := make([][]string, 0, len(changes))
	for i, c := range changes {
		var position, value string
		switch {
		case c.Op == ordered.OpSwap:
			position = fmt.Sprintf("%d <-> %d", c.Index, c.End)
		case c.Op == ordered.OpDelete && c.Ranged:
			position = fmt.Sprintf("%d..%d", c.Index, c.End)
		default:
			position = strconv.Itoa(c.Index)
		}
		if c.Op == ordered.OpReplace || c.Op == ordered.OpInsert {
			value = fmt.Sprintf("%v", c.Value)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Op.String(), position, value})
	}

	return Data{
		Headers:         []string{"#", "Op", "Position", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignRight, AlignLeft},
	}
}

// MultisetToTableData converts a multiset changeset to table format.
func MultisetToTableData[T any](changes []multiset.Change[T]) Data {
	rows := make([][]string, 0, len(changes))
	for i, c := range changes {
		var item, count, tier string
		if c.Op == multiset.OpReplace {
			item = joinValues(c.Values)
			count = strconv.Itoa(len(c.Values))
		} else {
			item = fmt.Sprintf("%v", c.Item)
			count = strconv.FormatUint(c.Count, 10)
			tier = c.Tier.String()
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Op.String(), item, count, tier})
	}

	return Data{
		Headers:         []string{"#", "Op", "Item", "Count", "Tier"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// KeyedToTableData converts a keyed changeset to table format. Replace
// entries are listed one per row in key order.
func KeyedToTableData[V any](changes []keyed.Change[string, V]) Data {
	rows := make([][]string, 0, len(changes))
	for i, c := range changes {
		n := strconv.Itoa(i + 1)
		if c.Op != keyed.OpReplace {
			rows = append(rows, []string{n, c.Op.String(), c.Key, fmt.Sprintf("%v", c.Value)})
			continue
		}
		keys := make([]string, 0, len(c.Entries))
		for k := range c.Entries {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		if len(keys) == 0 {
			rows = append(rows, []string{n, c.Op.String(), "", ""})
		}
		for _, k := range keys {
			rows = append(rows, []string{n, c.Op.String(), k, fmt.Sprintf("%v", c.Entries[k])})
		}
	}

	return Data{
		Headers:         []string{"#", "Op", "Key", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
}

func joinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ", ")
}
