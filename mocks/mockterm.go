// Package mocks provides a scriptable console for tests
package mocks

// MockTerm plays back scripted input and captures output lines
type MockTerm struct {
	Input    []string // lines handed out by ReadLine, in order
	Output   []string // completed output lines
	ClsCount int      // times the display was cleared

	pending string // partial line built up by Print
	nextIn  int
}

// Cls counts the clear request instead of touching a screen
func (mt *MockTerm) Cls() {
	mt.ClsCount++
}

// Print accumulates text until a Println completes the line
func (mt *MockTerm) Print(msg string) {
	mt.pending += msg
}

// Println captures one completed output line
func (mt *MockTerm) Println(msg string) {
	mt.Output = append(mt.Output, mt.pending+msg)
	mt.pending = ""
}

// ReadLine hands out the next scripted input line
func (mt *MockTerm) ReadLine() (string, bool) {
	if mt.nextIn >= len(mt.Input) {
		return "", false
	}
	line := mt.Input[mt.nextIn]
	mt.nextIn++
	return line, true
}

// ReadCommand behaves like ReadLine, the prompt is ignored
func (mt *MockTerm) ReadCommand(prompt string) (string, bool) {
	return mt.ReadLine()
}
