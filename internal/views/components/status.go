package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
	rowInfo     *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.statusLabel = widget.NewLabel("Ready")
	sb.imageInfo = widget.NewLabel("No image loaded")
	sb.rowInfo = widget.NewLabel("Rows: 0")
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.imageInfo,
		widget.NewSeparator(),
		sb.rowInfo,
	)
	return sb
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetImageInfo(name string, width, height int) {
	sb.imageInfo.SetText(fmt.Sprintf("%s: %dx%d", name, width, height))
}

func (sb *StatusBar) SetRowCount(rows, batches int) {
	sb.rowInfo.SetText(fmt.Sprintf("Rows: %d (%d batches)", rows, batches))
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
