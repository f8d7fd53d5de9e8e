package app

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding
func (kb *KeyBinding) GetKey() rune {
	return kb.Key
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// InitializeKeybindings sets up the action key bindings for the
// document view
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'b',
			Description: "Toggle bold",
			Handler: func(app *App) {
				app.execAction("bold")
			},
		},
		{
			Key:         'i',
			Description: "Toggle italic",
			Handler: func(app *App) {
				app.execAction("italic")
			},
		},
		{
			Key:         'x',
			Description: "Toggle strikethrough",
			Handler: func(app *App) {
				app.execAction("strikethrough")
			},
		},
		{
			Key:         '`',
			Description: "Toggle inline code",
			Handler: func(app *App) {
				app.execAction("codeInline")
			},
		},
		{
			Key:         '1',
			Description: "Heading level 1",
			Handler: func(app *App) {
				app.execAction("heading1")
			},
		},
		{
			Key:         '2',
			Description: "Heading level 2",
			Handler: func(app *App) {
				app.execAction("heading2")
			},
		},
		{
			Key:         '3',
			Description: "Heading level 3",
			Handler: func(app *App) {
				app.execAction("heading3")
			},
		},
		{
			Key:         'u',
			Description: "Toggle bullet list",
			Handler: func(app *App) {
				app.execAction("bulletList")
			},
		},
		{
			Key:         'o',
			Description: "Toggle ordered list",
			Handler: func(app *App) {
				app.execAction("orderedList")
			},
		},
		{
			Key:         '>',
			Description: "Indent list item",
			Handler: func(app *App) {
				app.execAction("indentList")
			},
		},
		{
			Key:         '<',
			Description: "Outdent list item",
			Handler: func(app *App) {
				app.execAction("outdentList")
			},
		},
		{
			Key:         'q',
			Description: "Toggle blockquote",
			Handler: func(app *App) {
				app.execAction("blockquote")
			},
		},
		{
			Key:         'c',
			Description: "Toggle code block",
			Handler: func(app *App) {
				app.execAction("codeBlock")
			},
		},
		{
			Key:         'l',
			Description: "Insert or edit link",
			Handler: func(app *App) {
				app.execAction("link")
			},
		},
		{
			Key:         'm',
			Description: "Insert image",
			Handler: func(app *App) {
				app.execAction("image")
			},
		},
		{
			Key:         'r',
			Description: "Insert horizontal rule",
			Handler: func(app *App) {
				app.execAction("horizontalRule")
			},
		},
		{
			Key:         't',
			Description: "Insert table",
			Handler: func(app *App) {
				app.execAction("table")
			},
		},
		{
			Key:         'z',
			Description: "Undo",
			Handler: func(app *App) {
				if app.editor.Exec("undo") {
					// The tree was rebuilt: re-anchor the block cursor
					app.setActiveBlock(app.activeBlock)
					app.SetStatus("Undo")
				} else {
					app.SetStatus("Nothing to undo")
				}
			},
		},
		{
			Key:         'Z',
			Description: "Redo",
			Handler: func(app *App) {
				if app.editor.Exec("redo") {
					app.setActiveBlock(app.activeBlock)
					app.SetStatus("Redo")
				} else {
					app.SetStatus("Nothing to redo")
				}
			},
		},
		{
			Key:         'a',
			Description: "Insert text at cursor",
			Handler: func(app *App) {
				text, ok := app.prompt.Input("Insert text", "")
				if !ok || text == "" {
					return
				}
				if app.editor.InsertText(text) {
					app.mu.Lock()
					app.dirty = true
					app.mu.Unlock()
				}
			},
		},
		{
			Key:         'p',
			Description: "Paste plain text",
			Handler: func(app *App) {
				text, ok := app.prompt.Input("Paste text", "")
				if !ok || text == "" {
					return
				}
				if app.editor.PastePlain(text) {
					app.mu.Lock()
					app.dirty = true
					app.mu.Unlock()
				}
			},
		},
		{
			Key:         '[',
			Description: "Load previous backup",
			Handler: func(app *App) {
				app.handlePreviousBackup()
			},
		},
		{
			Key:         ']',
			Description: "Load next backup",
			Handler: func(app *App) {
				app.handleNextBackup()
			},
		},
	}
}

// GetKeybindingByKey returns a keybinding for a given key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}
