package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spacecourier/ecs"
)

// SystemViewer lists the scheduler's systems in execution order with their
// timings and fault counts.
type SystemViewer struct {
	sortColumn    int
	sortAscending bool
}

func NewSystemViewer() *SystemViewer {
	return &SystemViewer{sortAscending: true}
}

func (sv *SystemViewer) Render(scheduler *ecs.Scheduler) {
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Frames: %d  Faulted: %d", stats.Frames, stats.FaultedFrames))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("SystemTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Order")
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Priority")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Entities/frame")
		imgui.TableSetupColumn("Faults")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range systemRows(stats, sv.sortColumn, sv.sortAscending) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Order))
			imgui.TableNextColumn()
			imgui.Text(row.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Priority))
			imgui.TableNextColumn()
			imgui.Text(row.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", row.EntitiesPerFrame))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.FaultCount))
		}

		imgui.EndTable()
	}

	imgui.End()
}

type systemRow struct {
	ecs.SystemStats
	Order            int
	EntitiesPerFrame float64
}

func systemRows(stats *ecs.SchedulerStats, column int, ascending bool) []systemRow {
	rows := make([]systemRow, len(stats.Systems))
	for i, s := range stats.Systems {
		rows[i] = systemRow{SystemStats: s, Order: i}
		if s.ExecutionCount > 0 {
			rows[i].EntitiesPerFrame = float64(s.EntityCount) / float64(s.ExecutionCount)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !ascending {
			a, b = b, a
		}
		switch column {
		case 1:
			return a.Name < b.Name
		case 2:
			return a.Priority < b.Priority
		case 3:
			return a.AvgDuration < b.AvgDuration
		case 4:
			return a.EntitiesPerFrame < b.EntitiesPerFrame
		case 5:
			return a.FaultCount < b.FaultCount
		default:
			return a.Order < b.Order
		}
	})
	return rows
}
