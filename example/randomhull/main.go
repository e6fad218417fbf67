// Command randomhull builds the convex hull of a random point cloud and
// reports its facet count, hypervolume and verification result. With
// -profile it writes a cpu.pprof next to the binary.
package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/pkg/profile"

	"github.com/akmonengine/quickhull"
)

func main() {
	dim := flag.Int("dim", 3, "ambient dimension")
	count := flag.Int("points", 10000, "number of random points")
	seed := flag.Int64("seed", 1, "random seed")
	eps := flag.Float64("eps", 1e-9, "coplanarity tolerance")
	prof := flag.Bool("profile", false, "write a cpu profile")
	flag.Parse()

	if *prof {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	rng := rand.New(rand.NewSource(*seed))
	pts := make(quickhull.Points, *count)
	for i := range pts {
		p := make([]float64, *dim)
		for c := range p {
			p[c] = rng.Float64()*2 - 1
		}
		pts[i] = p
	}

	h, err := quickhull.New(*dim, *eps, pts)
	if err != nil {
		log.Fatal(err)
	}
	for i := range pts {
		h.AddPoints(i)
	}

	basis := h.AffineBasis()
	if len(basis) != *dim+1 {
		log.Fatalf("point cloud is degenerate: affine rank %d", len(basis)-1)
	}
	volume := h.CreateSimplex(basis)
	h.Build()

	log.Printf("%d points in dimension %d: %d facets, simplex hypervolume %g",
		*count, *dim, len(h.Facets()), volume)
	if !h.Verify() {
		log.Fatal("hull failed verification")
	}
	log.Print("hull verified")
}
