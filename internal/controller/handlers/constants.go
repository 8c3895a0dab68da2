package handlers

// Форматы команд с аргументами, поля разделяются "|"
const (
	UsageTimetable    = "/timetable Day | Subject | HH:MM | HH:MM | Semester"
	UsageAddProfessor = "/addprofessor ChatID | Name | Department | Designation | Phone"
	UsageAddClassroom = "/addclassroom Name | Department | Floor | Room | Capacity | facility, facility"
	UsageAddSlot      = "/addslot YYYY-MM-DD | Subject"
)

const argSeparator = "|"
