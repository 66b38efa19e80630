package command

// Command words.
const (
	WordAdd    = "add"
	WordEdit   = "edit"
	WordDelete = "delete"
	WordFind   = "find"
	WordList   = "list"

	WordAddCapEntry    = "addCapEntry"
	WordEditCapEntry   = "editCapEntry"
	WordDeleteCapEntry = "deleteCapEntry"
	WordFindCapEntry   = "findCapEntry"
	WordListCapEntry   = "listCapEntry"

	WordAddHomework    = "addHomework"
	WordEditHomework   = "editHomework"
	WordDeleteHomework = "deleteHomework"
	WordFindHomework   = "findHomework"
	WordListHomework   = "listHomework"

	WordAddNote    = "addNote"
	WordEditNote   = "editNote"
	WordDeleteNote = "deleteNote"
	WordFindNote   = "findNote"
	WordListNote   = "listNote"

	WordClear   = "clear"
	WordUndo    = "undo"
	WordRedo    = "redo"
	WordHistory = "history"
	WordHelp    = "help"
	WordExit    = "exit"
)

// User-visible messages shared by several commands.
const (
	MessageUnknownCommand       = "Unknown command"
	MessageInvalidCommandFormat = "Invalid command format! \n%s"
	MessageNotEdited            = "At least one field to edit must be provided."

	MessageInvalidPersonIndex   = "The person index provided is invalid"
	MessageInvalidCapEntryIndex = "The cap entry index provided is invalid"
	MessageInvalidHomeworkIndex = "The homework index provided is invalid"
	MessageInvalidNoteIndex     = "The note entry index provided is invalid"

	MessageDuplicatePerson   = "This person already exists"
	MessageDuplicateCapEntry = "This cap entry already exists"
	MessageDuplicateHomework = "This homework already exists"
	MessageDuplicateNote     = "This note already exists"

	MessagePersonsListed    = "%d persons listed!"
	MessageCapEntriesListed = "%d cap entries listed!"
	MessageHomeworkListed   = "%d homework listed!"
	MessageNotesListed      = "%d notes listed!"

	MessageHelp      = "Opened help window."
	MessageExit      = "Exiting UltiStudent as requested ..."
	MessageClear     = "UltiStudent has been cleared!"
	MessageUndo      = "Undo success!"
	MessageRedo      = "Redo success!"
	MessageNoHistory = "You have not yet entered any commands."
	MessageHistory   = "Entered commands (from most recent to earliest):\n%s"
)

// Usage holds the usage text of every command word.
var Usage = map[string]string{
	WordAdd: WordAdd + ": Adds a person to the address book. " +
		"Parameters: n/NAME p/PHONE e/EMAIL a/ADDRESS [t/TAG]...\n" +
		"Example: " + WordAdd + " n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2, #02-25 t/friends",
	WordEdit: WordEdit + ": Edits the details of the person identified by the index number used in the displayed person list. " +
		"Existing values will be overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]...\n" +
		"Example: " + WordEdit + " 1 p/91234567 e/johndoe@example.com",
	WordDelete: WordDelete + ": Deletes the person identified by the index number used in the displayed person list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + WordDelete + " 1",
	WordFind: WordFind + ": Finds all persons whose names contain any of the specified keywords (case-insensitive) " +
		"and displays them as a list with index numbers.\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + WordFind + " alice bob charlie",
	WordList: WordList + ": Lists all persons.",

	WordAddCapEntry: WordAddCapEntry + ": Adds a cap entry to the cap manager. " +
		"Parameters: mc/MODULE_CODE g/GRADE cr/MODULAR_CREDITS s/SEMESTER [t/TAG]...\n" +
		"Example: " + WordAddCapEntry + " mc/CS2103T g/A cr/4 s/Y2S1",
	WordEditCapEntry: WordEditCapEntry + ": Edits the cap entry identified by the index number used in the displayed cap entry list. " +
		"Existing values will be overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [mc/MODULE_CODE] [g/GRADE] [cr/MODULAR_CREDITS] [s/SEMESTER] [t/TAG]...\n" +
		"Example: " + WordEditCapEntry + " 1 g/A+",
	WordDeleteCapEntry: WordDeleteCapEntry + ": Deletes the cap entry identified by the index number used in the displayed cap entry list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + WordDeleteCapEntry + " 1",
	WordFindCapEntry: WordFindCapEntry + ": Finds all cap entries whose module codes match any of the specified keywords (case-insensitive).\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + WordFindCapEntry + " CS2103T MA1521",
	WordListCapEntry: WordListCapEntry + ": Lists all cap entries.",

	WordAddHomework: WordAddHomework + ": Adds a homework to the homework manager. " +
		"Parameters: hw/HOMEWORK_NAME mc/MODULE_CODE d/DEADLINE [p/PRIORITY]\n" +
		"Example: " + WordAddHomework + " hw/Lab1 mc/CS2103T d/01/01/2020 p/high",
	WordEditHomework: WordEditHomework + ": Edits the homework identified by the index number used in the displayed homework list. " +
		"Existing values will be overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [hw/HOMEWORK_NAME] [mc/MODULE_CODE] [d/DEADLINE] [p/PRIORITY]\n" +
		"Example: " + WordEditHomework + " 1 d/02/02/2020",
	WordDeleteHomework: WordDeleteHomework + ": Deletes the homework identified by the index number used in the displayed homework list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + WordDeleteHomework + " 1",
	WordFindHomework: WordFindHomework + ": Finds all homework whose module codes match any of the specified keywords (case-insensitive).\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + WordFindHomework + " CS2103T",
	WordListHomework: WordListHomework + ": Lists all homework.",

	WordAddNote: WordAddNote + ": Adds a note to the notes manager. " +
		"Parameters: mc/MODULE_CODE c/CONTENT\n" +
		"Example: " + WordAddNote + " mc/CS2103T c/Read chapter 4",
	WordEditNote: WordEditNote + ": Edits the note identified by the index number used in the displayed note list. " +
		"Existing values will be overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [mc/MODULE_CODE] [c/CONTENT]\n" +
		"Example: " + WordEditNote + " 1 c/Read chapter 5",
	WordDeleteNote: WordDeleteNote + ": Deletes the note identified by the index number used in the displayed note list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + WordDeleteNote + " 1",
	WordFindNote: WordFindNote + ": Finds all notes whose module code or content contains any of the specified keywords (case-insensitive).\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + WordFindNote + " CS2103T chapter",
	WordListNote: WordListNote + ": Lists all notes.",

	WordClear:   WordClear + ": Clears every record.",
	WordUndo:    WordUndo + ": Undoes the previous command.",
	WordRedo:    WordRedo + ": Redoes the previously undone command.",
	WordHistory: WordHistory + ": Lists all the commands that you have entered in reverse chronological order.",
	WordHelp:    WordHelp + ": Shows program usage instructions.\nExample: " + WordHelp,
	WordExit:    WordExit + ": Exits the program.",
}
