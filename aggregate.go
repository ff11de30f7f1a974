package csstypes

// Aggregate merges classes sharing a name. The result lists each name once,
// in order of first appearance; its properties are the concatenation of every
// input record's properties in input order. Duplicate declarations are kept.
//
// Input:
//
//	[{container [576px @media]}, {row [...]}, {container [768px]}]
//
// Output:
//
//	[{container [576px @media, 768px]}, {row [...]}]
func Aggregate(classes []Class) []Class {
	aggregated := make([]Class, 0, len(classes))
	index := make(map[string]int, len(classes))

	for _, class := range classes {
		if i, ok := index[class.Name]; ok {
			aggregated[i].Properties = append(aggregated[i].Properties, class.Properties...)
			continue
		}

		// Copy so appends never write into the caller's backing array
		props := make([]Property, len(class.Properties))
		copy(props, class.Properties)

		index[class.Name] = len(aggregated)
		aggregated = append(aggregated, Class{Name: class.Name, Properties: props})
	}

	return aggregated
}
