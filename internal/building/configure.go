package building

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/envelope"
	"github.com/Agrid-Dev/hvacstandards/internal/equipment"
	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/ports"
	"github.com/Agrid-Dev/hvacstandards/internal/report"
	"github.com/Agrid-Dev/hvacstandards/internal/requirements"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// KindSubSurface is the report kind of door, window and skylight entries.
const KindSubSurface = "SubSurface"

type ConfigureOptions struct {
	Log          *zap.Logger
	Requirements []requirements.Option
	Equipment    []equipment.Option
	// Runner is asked for one sizing run when some capacity is missing.
	Runner ports.SizingRunner
}

// Configure runs the pipeline on b: one sizing run when capacities are
// missing, then the reference efficiencies and curves, then the
// economizer, ERV and VAV damper requirements, which read the autosized
// flows. Components added by the requirements are reported as applied.
// Sub-surfaces get their area reduction and component infiltration last.
func Configure(ctx context.Context, std *standards.Standard, b *Building, o ConfigureOptions) *report.Report {
	log := o.Log
	if log == nil {
		log = std.Logger()
	}

	ap := equipment.New(std, b.Model, b.Results, append([]equipment.Option{equipment.WithLogger(log)}, o.Equipment...)...)
	ap.Size(ctx, b.Model, o.Runner)

	// keyed by identity, ApplyAll renames components
	before := make(map[model.Component]bool)
	for _, c := range b.Model.Components() {
		before[c] = true
	}
	rep := ap.ApplyAll(ctx, b.Model, nil)

	ev := requirements.New(std, b.Results, b.Weather, append([]requirements.Option{requirements.WithLogger(log)}, o.Requirements...)...)
	economizers := ev.ApplyEconomizers(b.Model)
	ervs := ev.ApplyERVs(b.Model)
	dampers := ev.ApplyVAVDamperAction(b.Model)

	for _, c := range b.Model.Components() {
		if !before[c] {
			rep.Add(c.Name(), c.Kind().String(), report.OutcomeApplied, "added by requirement")
		}
	}
	subs := applyEnvelope(b, rep, log)
	rep.Finalize()

	log.Info("building configured",
		zap.String("model", b.Model.Name),
		zap.Int("economizers", economizers),
		zap.Int("ervs", ervs),
		zap.Int("vav_dampers", dampers),
		zap.Int("sub_surfaces", subs),
		zap.Int("applied", rep.Summary.Applied),
		zap.Int("partial", rep.Summary.Partial),
		zap.Bool("complete", rep.Complete))
	return rep
}

// applyEnvelope reduces the fenestration area of every sub-surface when the
// building asks for it, then adds the component infiltration of each one
// to its zone. It returns the number of sub-surfaces fully handled.
func applyEnvelope(b *Building, rep *report.Report, log *zap.Logger) int {
	var n int
	for _, zs := range b.SubSurfaces {
		sub := zs.SubSurface
		var msgs []string

		if b.FenestrationReduction > 0 && isFenestration(sub.Type) {
			if err := reduceArea(sub, b.FenestrationReduction); err != nil {
				log.Warn("area reduction failed", zap.String("sub_surface", sub.Name), zap.Error(err))
				rep.Add(sub.Name, KindSubSurface, report.OutcomePartial, err.Error())
				continue
			}
			msgs = append(msgs, fmt.Sprintf("area reduced by %.0f%%", b.FenestrationReduction*100))
		}

		rate, ok := envelope.ComponentInfiltrationRate(*sub, b.Infiltration)
		if !ok {
			log.Warn("no infiltration rate",
				zap.String("sub_surface", sub.Name),
				zap.Stringer("type", sub.Type),
				zap.Stringer("case", b.Infiltration))
			rep.Add(sub.Name, KindSubSurface, report.OutcomePartial, append(msgs, "no infiltration rate")...)
			continue
		}
		zs.Zone.ComponentInfiltration += rate
		msgs = append(msgs, fmt.Sprintf("infiltration %.6f m3/s", rate))
		rep.Add(sub.Name, KindSubSurface, report.OutcomeApplied, msgs...)
		n++
	}
	return n
}

func isFenestration(t envelope.SubSurfaceType) bool {
	switch t {
	case envelope.SubSurfaceFixedWindow, envelope.SubSurfaceOperableWindow,
		envelope.SubSurfaceGlassDoor, envelope.SubSurfaceSkylight:
		return true
	}
	return false
}

// reduceArea raises the sill of vertical rectangles and shrinks every
// other polygon toward its centroid.
func reduceArea(sub *envelope.SubSurface, fraction float64) error {
	if envelope.IsVerticalRectangle(sub.Vertices) {
		return sub.ReduceAreaByRaisingSill(fraction)
	}
	return sub.ReduceAreaByShrinking(fraction)
}
