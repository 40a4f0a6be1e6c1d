// Package pkg holds the libraries behind shardline, a tool that rebuilds a
// corrupted module dataset through a ten-stage restoration run.
//
// # Overview
//
// The packages split into a pure core and the layers that feed it:
//
//  1. [record], [sorter], [bst], [depgraph], [activation] - the ordering and
//     traversal core. No I/O, no errors, no configuration.
//  2. [restore] - the linear stages (decode, pair, dedup, queue, action log,
//     annotate) plus the [restore.Runner] that wires them to the core.
//  3. [dataset] - TOML, YAML and JSON loaders for the input documents.
//  4. [errors], [observability], [buildinfo] - shared infrastructure.
//
// # Architecture
//
// A run moves through the packages like this:
//
//	dataset file (.toml / .yaml / .json)
//	         ↓
//	    [dataset] package (decode + validate)
//	         ↓
//	    [restore] package (stages 1-6, protocol-specific)
//	         ↓
//	    [sorter] + [bst] packages (stages 7-8)
//	         ↓
//	    [depgraph] + [activation] packages (stages 9-10)
//	         ↓
//	    activation order + completion message
//
// # Quick Start
//
//	ds, err := dataset.Load("examples/codex9.toml")
//	if err != nil {
//	    return err
//	}
//	p, _ := restore.LookupProtocol(ds.Protocol)
//	res, err := restore.NewRunner(nil).Execute(ctx, p, ds)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Order, res.Message)
//
// The core can also be used on its own:
//
//	sorted := sorter.Merge(record.Sequence{{ID: "104", Value: 3.4}, {ID: "309", Value: 2.1}})
//	g := depgraph.Build(map[string][]string{"7": {"12"}, "12": {"18"}})
//	order, msg := activation.Activate(g, "7")
//
// # Testing
//
//	go test ./pkg/...            # All library tests
//	go test -run Example ./...   # Examples only
//
// [record]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/record
// [sorter]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/sorter
// [bst]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/bst
// [depgraph]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/depgraph
// [activation]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/activation
// [restore]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/restore
// [restore.Runner]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/restore#Runner
// [dataset]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/dataset
// [errors]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/shardline/pkg/buildinfo
package pkg
