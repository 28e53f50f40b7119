package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/Inventario-tiendas/internal/application/editor"
	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

const helpText = `Comandos:
  list                                   muestra el inventario
  add <cantidad> <sku> <tienda> [desc]   agrega un artículo (sin argumentos reenvía el último formulario)
  edit <id>                              empieza a editar un registro
  set <campo> <valor>                    cambia quantity, sku, store o description del borrador
  show                                   muestra el borrador en edición
  save                                   guarda la edición
  cancel                                 descarta la edición
  delete <id>                            elimina un registro (pide confirmación)
  import <ruta> [latin1]                 sube un archivo CSV
  refresh                                vuelve a pedir la lista al servicio
  help                                   esta ayuda
  quit                                   salir`

// visibleLines líneas de historial que se pintan sobre el prompt.
const visibleLines = 30

type mode int

const (
	modeCommand mode = iota
	modeConfirmDelete
	modeBusy
)

/* ----------------------------------------
	MENSAJES DE LAS OPERACIONES REMOTAS
---------------------------------------- */

type refreshedMsg struct{ err error }

type createdMsg struct {
	form editor.Fields
	err  error
}

type committedMsg struct{ err error }

type deletedMsg struct{ err error }

type importedMsg struct {
	res editor.ImportResult
	err error
}

// Model consola interactiva (bubbletea) sobre el núcleo del editor.
// Las llamadas al servicio corren como tea.Cmd; mientras tanto la entrada se ignora.
type Model struct {
	ctx      context.Context
	ed       *editor.Editor
	log      *logger.Logger
	readFile func(path string) ([]byte, error)

	mode    mode
	input   []rune
	lines   []string
	form    editor.Fields
	pending editor.Record
}

// NewModel construye la consola. ctx se usa en las llamadas al servicio.
func NewModel(ctx context.Context, ed *editor.Editor, log *logger.Logger) *Model {
	return &Model{
		ctx:      ctx,
		ed:       ed,
		log:      log.Named("console"),
		readFile: os.ReadFile,
		mode:     modeBusy,
	}
}

// Run ejecuta la consola hasta quit, Ctrl+C o cancelación de ctx.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Init pide la lista inicial.
func (m *Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshedMsg:
		m.mode = modeCommand
		if msg.err != nil {
			m.println(editor.UserMessage(msg.err))
			return m, nil
		}
		m.printList()

	case createdMsg:
		m.mode = modeCommand
		m.form = msg.form
		if msg.err != nil {
			m.println(editor.CreateFailedMessage(msg.err))
			return m, nil
		}
		m.println("Artículo agregado.")
		m.printList()

	case committedMsg:
		m.mode = modeCommand
		if msg.err != nil {
			m.println(editor.UserMessage(msg.err))
			return m, nil
		}
		m.println("Cambios guardados.")
		m.printList()

	case deletedMsg:
		m.mode = modeCommand
		if msg.err != nil {
			m.printf("No se pudo eliminar el artículo: %s", editor.UserMessage(msg.err))
			return m, nil
		}
		m.println("Artículo eliminado.")
		m.printList()

	case importedMsg:
		m.mode = modeCommand
		m.println(editor.ImportMessage(msg.res, msg.err))
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.mode {
	case modeBusy:
		return m, nil
	case modeConfirmDelete:
		return m.answerDelete(msg)
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyEsc:
		m.input = m.input[:0]
	case tea.KeyEnter:
		line := strings.TrimSpace(string(m.input))
		m.input = m.input[:0]
		if line == "" {
			return m, nil
		}
		m.println("> " + line)
		return m, m.exec(line)
	}
	return m, nil
}

func (m *Model) exec(line string) tea.Cmd {
	cmd, args := splitCommand(line)
	switch cmd {
	case "list", "ls":
		m.printList()
	case "refresh":
		return m.refreshCmd()
	case "add":
		return m.add(args)
	case "edit":
		id, ok := m.parseID(args)
		if !ok {
			return nil
		}
		if err := m.ed.BeginEdit(id); err != nil {
			m.println(editor.UserMessage(err))
			return nil
		}
		m.printSession()
	case "set":
		m.set(args)
	case "show":
		m.printSession()
	case "save":
		m.mode = modeBusy
		return func() tea.Msg {
			return committedMsg{err: m.ed.CommitEdit(m.ctx)}
		}
	case "cancel":
		if m.ed.CancelEdit() {
			m.println("Edición descartada.")
		} else {
			m.println(editor.UserMessage(editor.ErrNoSession))
		}
	case "delete", "rm":
		m.askDelete(args)
	case "import":
		return m.importFile(args)
	case "help", "?":
		m.println(helpText)
	case "quit", "exit":
		return tea.Quit
	default:
		m.printf("Comando desconocido %q. Escribe help.", cmd)
	}
	return nil
}

func (m *Model) refreshCmd() tea.Cmd {
	m.mode = modeBusy
	return func() tea.Msg {
		return refreshedMsg{err: m.ed.Refresh(m.ctx)}
	}
}

func (m *Model) add(args []string) tea.Cmd {
	if len(args) > 0 {
		if len(args) < 3 {
			m.println("Uso: add <cantidad> <sku> <tienda> [descripción]")
			return nil
		}
		m.form = editor.Fields{
			Quantity:    args[0],
			SKU:         args[1],
			Store:       args[2],
			Description: strings.Join(args[3:], " "),
		}
	}
	form := m.form
	m.mode = modeBusy
	return func() tea.Msg {
		err := m.ed.CreateRecord(m.ctx, &form)
		return createdMsg{form: form, err: err}
	}
}

func (m *Model) set(args []string) {
	if len(args) < 1 {
		m.println("Uso: set <campo> <valor>")
		return
	}
	f, err := editor.ParseField(args[0])
	if err != nil {
		m.printf("%s: %s", editor.UserMessage(err), args[0])
		return
	}
	if err := m.ed.UpdateDraftField(f, strings.Join(args[1:], " ")); err != nil {
		m.println(editor.UserMessage(err))
		return
	}
	m.printSession()
}

// askDelete pasa a pedir confirmación si id está en la lista actual.
func (m *Model) askDelete(args []string) {
	id, ok := m.parseID(args)
	if !ok {
		return
	}
	for _, r := range m.ed.ListRecords() {
		if r.ID == id {
			m.pending = r
			m.mode = modeConfirmDelete
			return
		}
	}
	m.println(editor.UserMessage(editor.ErrUnknownRecord))
}

// answerDelete s/y confirma; cualquier otra tecla cancela sin petición.
func (m *Model) answerDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pending.ID
	m.printf("¿Eliminar %s en %s (id %d)? [s/N] %s", m.pending.SKU, m.pending.Store, id, msg.String())
	m.pending = editor.Record{}

	answer := ""
	if msg.Type == tea.KeyRunes {
		answer = strings.ToLower(string(msg.Runes))
	}
	if answer != "s" && answer != "y" {
		m.mode = modeCommand
		err := m.ed.DeleteRecord(m.ctx, id, func(editor.Record) bool { return false })
		if errors.Is(err, editor.ErrNotConfirmed) {
			m.println("Eliminación cancelada.")
		} else if err != nil {
			m.println(editor.UserMessage(err))
		}
		return m, nil
	}

	m.mode = modeBusy
	return m, func() tea.Msg {
		err := m.ed.DeleteRecord(m.ctx, id, func(editor.Record) bool { return true })
		return deletedMsg{err: err}
	}
}

func (m *Model) importFile(args []string) tea.Cmd {
	if len(args) == 0 {
		// sin archivo el núcleo no hace ninguna petición
		if _, err := m.ed.ImportFile(m.ctx, nil); errors.Is(err, editor.ErrNoFile) {
			m.println("Uso: import <ruta> [latin1]")
		}
		return nil
	}
	data, err := m.readFile(args[0])
	if err != nil {
		m.log.Warn().Err(err).Str("path", args[0]).Msg("no se pudo leer el archivo")
		m.printf("No se pudo leer %s", args[0])
		return nil
	}
	payload := &editor.FilePayload{Name: baseName(args[0]), Data: data}
	if len(args) > 1 {
		payload.Charset = args[1]
	}
	m.mode = modeBusy
	return func() tea.Msg {
		res, err := m.ed.ImportFile(m.ctx, payload)
		return importedMsg{res: res, err: err}
	}
}

func (m *Model) parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		m.println("Indica el id del registro.")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		m.printf("id inválido: %s", args[0])
		return 0, false
	}
	return id, true
}

/* ----------------------------------------
	VISTA
---------------------------------------- */

func (m *Model) View() string {
	var b strings.Builder
	from := max(0, len(m.lines)-visibleLines)
	for _, l := range m.lines[from:] {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	switch m.mode {
	case modeBusy:
		b.WriteString("procesando...")
	case modeConfirmDelete:
		fmt.Fprintf(&b, "¿Eliminar %s en %s (id %d)? [s/N] ", m.pending.SKU, m.pending.Store, m.pending.ID)
	default:
		b.WriteString("> " + string(m.input))
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *Model) printList() {
	records := m.ed.ListRecords()
	if len(records) == 0 {
		m.println("(inventario vacío)")
		return
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCANTIDAD\tSKU\tTIENDA\tDESCRIPCIÓN")
	for _, r := range records {
		desc := ""
		if r.Description != nil {
			desc = *r.Description
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", r.ID, r.Quantity, r.SKU, r.Store, desc)
	}
	_ = tw.Flush()
	m.println(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) printSession() {
	ed, ok := m.ed.Session().(editor.Editing)
	if !ok {
		m.println(editor.UserMessage(editor.ErrNoSession))
		return
	}
	d := ed.Draft
	m.printf("Editando %d: quantity=%q sku=%q store=%q description=%q", ed.TargetID, d.Quantity, d.SKU, d.Store, d.Description)
	if ed.Err != nil {
		m.println("  error: " + editor.UserMessage(ed.Err))
	}
}

func (m *Model) println(s string) {
	m.lines = append(m.lines, strings.Split(s, "\n")...)
}

func (m *Model) printf(format string, a ...any) {
	m.println(fmt.Sprintf(format, a...))
}

func splitCommand(line string) (string, []string) {
	parts := strings.Fields(line)
	return strings.ToLower(parts[0]), parts[1:]
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
