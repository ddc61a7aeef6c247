package model

// Task is a work item assigned to the employee.
type Task struct {
	ID          int
	Title       string
	Description string
	Deadline    string
	Priority    string
}

// Notice is a company announcement.
type Notice struct {
	ID    int
	Title string
	Body  string
	Date  string
}

// Holiday is a company-observed holiday.
type Holiday struct {
	ID   int
	Name string
	Date string
}
