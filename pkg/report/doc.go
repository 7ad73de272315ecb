// Package report writes audit reports in the supported output formats.
//
// # Formats
//
//   - text: one "<dependency>: <repo1>, <repo2>" line per entry under a
//     fixed header line
//   - json: the full report including run metadata and failures
//   - dot: a Graphviz digraph with repository → dependency edges
//   - svg: the dot graph rendered in-process by go-graphviz
//
// # Usage
//
//	f, err := report.ParseFormat("json")
//	if err != nil {
//	    return err
//	}
//	return report.Write(ctx, os.Stdout, r, f)
package report
