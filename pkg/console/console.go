package console

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/shared/types"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// barWidth é a largura máxima, em caracteres, das barras de custo.
const barWidth = 40

// Console é uma implementação do ConsoleInterface sobre pterm.
type Console struct {
	out         io.Writer
	interactive bool
}

// NewConsole cria um Console que escreve em stdout. Fora de um terminal
// (cron, CI) as cores e o spinner são desativados.
func NewConsole() *Console {
	fd := os.Stdout.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !interactive {
		pterm.DisableStyling()
	}
	return &Console{out: os.Stdout, interactive: interactive}
}

// NewWriterConsole cria um Console não interativo que escreve em w.
func NewWriterConsole(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	fmt.Fprint(c.out, pterm.Info.Sprintfln(format, a...))
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	fmt.Fprint(c.out, pterm.Warning.Sprintfln(format, a...))
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	fmt.Fprint(c.out, pterm.Error.Sprintfln(format, a...))
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	fmt.Fprint(c.out, pterm.Success.Sprintfln(format, a...))
}

// statusHandle é uma implementação do StatusHandle. Sem spinner, cada
// atualização vira uma linha de log.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
	console *Console
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	if !c.interactive {
		c.LogInfo("%s", message)
		return &statusHandle{console: c}
	}
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner, console: c}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
		return
	}
	h.console.LogInfo("%s", message)
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela; células são convertidas com fmt.Sprint.
func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, row)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	data := append(pterm.TableData{t.columns}, t.rows...)

	rendered, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	return rendered
}

// DisplayCostBars exibe o custo de cada projeto no período como barras.
func (c *Console) DisplayCostBars(title string, costs []types.ProjectCost) {
	maxCost, total := 0.0, 0.0
	for _, pc := range costs {
		maxCost = math.Max(maxCost, pc.Cost)
		total += pc.Cost
	}

	if maxCost <= 0 {
		c.LogWarning("All costs are $0.00 for this period")
		return
	}

	data := pterm.TableData{
		{"Project", "Cost", "", "Share", "Peak day"},
	}

	for _, pc := range costs {
		bar := strings.Repeat("█", int(math.Max(0, pc.Cost/maxCost)*barWidth))

		share := pc.Cost / total * 100
		shareText := fmt.Sprintf("%.1f%%", share)
		switch {
		case share >= 50:
			bar, shareText = pterm.FgRed.Sprint(bar), pterm.FgRed.Sprint(shareText)
		case share >= 10:
			bar, shareText = pterm.FgYellow.Sprint(bar), pterm.FgYellow.Sprint(shareText)
		default:
			bar = pterm.FgBlue.Sprint(bar)
		}

		data = append(data, []string{
			pc.Project,
			fmt.Sprintf("$%.2f", pc.Cost),
			bar,
			shareText,
			fmt.Sprintf("$%.2f", pc.Peak),
		})
	}

	rendered, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(rendered)

	fmt.Fprintln(c.out, "\n"+panel)
}
