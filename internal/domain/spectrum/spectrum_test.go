package spectrum_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mirall/archetype/internal/domain/catalog"
	"github.com/mirall/archetype/internal/domain/match"
	"github.com/mirall/archetype/internal/domain/spectrum"
	"github.com/mirall/archetype/internal/domain/trait"
)

func TestCompute(t *testing.T) {
	Convey("Given rankings from the default catalog", t, func() {
		ctx := context.Background()
		cat, err := catalog.New(catalog.DefaultArchetypes())
		So(err, ShouldBeNil)
		m := match.New()

		Convey("When the result is decisive", func() {
			traits := trait.NewScores()
			traits[trait.Conscientiousness] = 100
			res := m.Rank(ctx, traits, cat)
			So(res.Decisive, ShouldBeTrue)

			Convey("Then no spectrum is produced", func() {
				So(spectrum.Compute(res, spectrum.DefaultMaxAdjacent), ShouldBeNil)
			})
		})

		Convey("When the result is close", func() {
			traits := trait.NewScores()
			traits[trait.Affinity] = 100
			res := m.Rank(ctx, traits, cat)
			So(res.Decisive, ShouldBeFalse)

			sp := spectrum.Compute(res, spectrum.DefaultMaxAdjacent)

			Convey("Then the spectrum spans the top two archetypes", func() {
				So(sp, ShouldNotBeNil)
				So(sp.PrimaryID, ShouldEqual, res.Primary().Archetype.ID)
				So(sp.RunnerUpID, ShouldEqual, res.RunnerUp().Archetype.ID)
			})

			Convey("And the position sits between the midpoint and the primary", func() {
				So(sp.Position, ShouldBeGreaterThan, 0)
				So(sp.Position, ShouldBeLessThanOrEqualTo, 0.5)
			})

			Convey("And adjacent alternatives are capped", func() {
				So(len(sp.Adjacent), ShouldEqual, spectrum.DefaultMaxAdjacent)
				So(sp.Adjacent[0].ArchetypeID, ShouldEqual, res.Candidates[2].Archetype.ID)
			})
		})

		Convey("When every score ties at zero", func() {
			res := m.Rank(ctx, trait.NewScores(), cat)
			sp := spectrum.Compute(res, 0)

			Convey("Then the position is the exact midpoint with no adjacents", func() {
				So(sp, ShouldNotBeNil)
				So(sp.Position, ShouldEqual, 0.5)
				So(len(sp.Adjacent), ShouldEqual, 0)
			})
		})
	})
}
