package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"qaforge/internal/domain"
	"qaforge/internal/storage"
)

// ReviewViewer displays generated test cases in an interactive TUI
type ReviewViewer struct {
	storage storage.Storage
}

// NewReviewViewer creates a new ReviewViewer
func NewReviewViewer(st storage.Storage) *ReviewViewer {
	return &ReviewViewer{storage: st}
}

// caseRef points at one test case inside the document
type caseRef struct {
	suite int
	tc    int
}

// View displays the document's test cases in an interactive TUI. Review
// toggles are persisted back to docPath.
func (rv *ReviewViewer) View(doc *storage.Document, docPath string) error {
	// Flatten suites into a single navigable list
	var refs []caseRef
	for si, suite := range doc.TestSuites {
		for ti := range suite.TestCases {
			refs = append(refs, caseRef{suite: si, tc: ti})
		}
	}

	if len(refs) == 0 {
		color.Yellow("⚠ No test cases to review.")
		return nil
	}

	caseAt := func(ref caseRef) *domain.TestCase {
		return &doc.TestSuites[ref.suite].TestCases[ref.tc]
	}

	saveReviewStatus := func() error {
		return rv.storage.Save(doc, docPath)
	}

	// Create the application
	app := tview.NewApplication()

	// Create list for test cases (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	// Function to get formatted text for a list item
	getListItemText := func(index int) string {
		ref := refs[index]
		tc := caseAt(ref)
		name := tc.Name
		if name == "" {
			name = fmt.Sprintf("Test case %d", index+1)
		}

		if tc.Reviewed {
			return fmt.Sprintf("[gray]✓ [yellow]%s[gray] %s[white]", tc.ID, name)
		}
		return fmt.Sprintf("[yellow]%s[white] %s", tc.ID, name)
	}

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, getListItemText(index), "")
	}

	for i := range refs {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Stats header view (shows suite and case id)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Text view for case details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	countUnreviewed := func() int {
		count := 0
		for _, ref := range refs {
			if !caseAt(ref).Reviewed {
				count++
			}
		}
		return count
	}

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unreviewed := countUnreviewed()
		headerText := fmt.Sprintf(" Test Cases (%d total, %d unreviewed) | Use ↑↓ to navigate, [yellow]R[white] to mark reviewed, → to view details, ← to go back, Ctrl+C to exit ", len(refs), unreviewed)
		headerView.SetText(headerText)
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(refs) {
			ref := refs[index]
			tc := caseAt(ref)
			suite := doc.TestSuites[ref.suite]

			statsView.SetText(rv.formatCaseStats(suite.SuiteName, tc))
			detailsView.SetText(rv.formatCaseDetails(tc))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(refs) {
					tc := caseAt(refs[index])
					tc.Reviewed = !tc.Reviewed
					updateListItem(index)
					updateHeader()
					updateDetails()
					if err := saveReviewStatus(); err != nil {
						_ = err
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// formatCaseDetails formats a test case for display using tview color tags
func (rv *ReviewViewer) formatCaseDetails(tc *domain.TestCase) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[green]%s: %s[white]\n\n", tc.ID, tc.Name)

	fmt.Fprintf(w, "[cyan]Priority:[white]\t%s\n", tc.Priority)
	fmt.Fprintf(w, "[cyan]Type:[white]\t%s\n", tc.Type)
	fmt.Fprintf(w, "[cyan]Automation Priority:[white]\t%s\n\n", tc.AutomationPriority)

	if tc.Description != "" {
		fmt.Fprintf(w, "[yellow]Description:[white]\n%s\n\n", tc.Description)
	}

	if tc.Preconditions != "" {
		fmt.Fprintf(w, "[yellow]Preconditions:[white]\n%s\n\n", tc.Preconditions)
	}

	if len(tc.TestSteps) > 0 {
		fmt.Fprintf(w, "[yellow]Test Steps:[white]\n")
		for i, step := range tc.TestSteps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
		fmt.Fprintf(w, "\n")
	}

	if tc.ExpectedResult != "" {
		fmt.Fprintf(w, "[yellow]Expected Result:[white]\n%s\n\n", tc.ExpectedResult)
	}

	if tc.TestData != "" {
		fmt.Fprintf(w, "[yellow]Test Data:[white]\n%s\n", tc.TestData)
	}

	w.Flush()
	return builder.String()
}

// formatCaseStats formats the stats header for a test case
func (rv *ReviewViewer) formatCaseStats(suiteName string, tc *domain.TestCase) string {
	var builder strings.Builder

	if suiteName == "" {
		suiteName = "Unnamed suite"
	}

	statsLine := fmt.Sprintf("[cyan]suite:[white] [yellow]%s[white]::[yellow]%s[white]", suiteName, tc.ID)
	builder.WriteString(statsLine)
	builder.WriteString("\n")

	return builder.String()
}
