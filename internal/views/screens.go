package views

import (
	"fmt"
	"strings"
)

type BoardTaskData struct {
	ID     int
	Name   string
	Status string
	Bonus  string
	End    string
}

type BoardProjectData struct {
	ID    int
	Name  string
	Stage string
	Tasks []BoardTaskData
}

type BoardColumnData struct {
	Title    string
	Projects []BoardProjectData
}

type BoardPanelData struct {
	Columns           []BoardColumnData
	SelectedProjectID int
	SelectedTaskID    int
}

type TimelineTaskData struct {
	Name    string
	Start   string
	End     string
	Status  string
	Days    int
	Overdue bool
}

type TimelineRowData struct {
	ProjectID   int
	ProjectName string
	Stage       string
	Selected    bool
	Tasks       []TimelineTaskData
}

type TimelinePanelData struct {
	Today string
	Rows  []TimelineRowData
}

type PriorityItemData struct {
	Rank           int
	Score          float64
	TaskName       string
	ProjectName    string
	Deadline       string
	DaysToDeadline int
	Overdue        bool
	Bonus          string
	Selected       bool
}

type PriorityPanelData struct {
	Today     string
	TableView string
	Items     []PriorityItemData
}

type ProjectDetailData struct {
	ID               int
	Name             string
	Stage            string
	Responsible      string
	PotentialRevenue float64
	WorkOrderNumber  string
	TaskCount        int
	CommentsView     string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderBoardPanel(data BoardPanelData) string {
	var b strings.Builder
	b.WriteString("board:\n")
	b.WriteString("actions: [j/k]task [h/l]project [c]close [b]bonus [x]delete\n")
	for _, col := range data.Columns {
		b.WriteString(fmt.Sprintf("\n%s (%d):\n", col.Title, len(col.Projects)))
		if len(col.Projects) == 0 {
			b.WriteString("  (none)\n")
			continue
		}
		for _, p := range col.Projects {
			marker := " "
			if p.ID == data.SelectedProjectID {
				marker = ">"
			}
			b.WriteString(fmt.Sprintf("%s #%d %s [%s]\n", marker, p.ID, p.Name, p.Stage))
			for _, t := range p.Tasks {
				cursor := " "
				if p.ID == data.SelectedProjectID && t.ID == data.SelectedTaskID {
					cursor = ">"
				}
				b.WriteString(fmt.Sprintf("  %s %d. %s [%s] due:%s", cursor, t.ID, t.Name, t.Status, t.End))
				if t.Bonus != "none" {
					b.WriteString(" bonus:" + t.Bonus)
				}
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderTimelinePanel(data TimelinePanelData) string {
	var b strings.Builder
	b.WriteString("timeline:\n")
	b.WriteString(fmt.Sprintf("today: %s\n", data.Today))
	b.WriteString("actions: [j/k]project\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no projects)")
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("\n%s #%d %s [%s]\n", cursor, row.ProjectID, row.ProjectName, row.Stage))
		if len(row.Tasks) == 0 {
			b.WriteString("  (no tasks)\n")
			continue
		}
		for _, t := range row.Tasks {
			line := fmt.Sprintf("  %s .. %s (%dd) %s [%s]", t.Start, t.End, t.Days, t.Name, t.Status)
			if t.Overdue {
				line += " " + overdueStyle.Render("OVERDUE")
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderPriorityPanel(data PriorityPanelData) string {
	var b strings.Builder
	b.WriteString("priority:\n")
	b.WriteString(fmt.Sprintf("today: %s\n", data.Today))
	b.WriteString("actions: [j/k]row\n")
	b.WriteString(data.TableView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(nothing in the window)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %2d. %5.1f %s (%s) due:%s d:%d bonus:%s",
			cursor, item.Rank, item.Score, item.TaskName, item.ProjectName, item.Deadline, item.DaysToDeadline, item.Bonus)
		if item.Overdue {
			line += " " + overdueStyle.Render("OVERDUE")
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderProjectDetailPane(data ProjectDetailData) string {
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("id: %d\n", data.ID))
	b.WriteString(fmt.Sprintf("name: %s\n", data.Name))
	b.WriteString(fmt.Sprintf("stage: %s\n", data.Stage))
	if data.Responsible != "" {
		b.WriteString(fmt.Sprintf("responsible: %s\n", data.Responsible))
	}
	if data.PotentialRevenue > 0 {
		b.WriteString(fmt.Sprintf("potential-revenue: %.2f\n", data.PotentialRevenue))
	}
	if data.WorkOrderNumber != "" {
		b.WriteString(fmt.Sprintf("work-order: %s\n", data.WorkOrderNumber))
	}
	b.WriteString(fmt.Sprintf("tasks: %d\n", data.TaskCount))
	b.WriteString("\ncomment-log:\n")
	b.WriteString(data.CommentsView)
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
