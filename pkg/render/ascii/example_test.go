package ascii_test

import (
	"fmt"

	"github.com/matzehuels/depviz/pkg/graph"
	"github.com/matzehuels/depviz/pkg/registry"
	"github.com/matzehuels/depviz/pkg/render/ascii"
)

func ExampleRender() {
	pkg := func(name string) graph.PackageRef {
		return graph.PackageRef{Name: name, Version: "1.0.0", Registry: registry.Npm}
	}

	b := graph.NewBuilder(pkg("foo"))
	b.Insert(pkg("bar"), 1)
	b.Insert(pkg("baz"), 1)
	_ = b.Resolve(pkg("foo"), []graph.PackageRef{pkg("bar"), pkg("baz")})
	_ = b.Resolve(pkg("bar"), []graph.PackageRef{pkg("baz")})
	_ = b.Resolve(pkg("baz"), nil)

	fmt.Print(ascii.Render(b.Finish(), ascii.Options{}))
	// Output:
	// foo@1.0.0
	// ├── bar@1.0.0
	// │   └── baz@1.0.0
	// └── baz@1.0.0 (shared, see above)
}
