// Package pipeline runs one comparison run as a sequence of steps.
//
// A run goes through three stages: discovering the submission folders,
// extracting their text, and comparing them pairwise. Each stage is a Step
// that receives the shared *model.Run and fills in its part.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. Each stage can be tested on a hand-built Run
// 2. It provides consistent error handling and logging across steps
// 3. Cancellation (Ctrl-C) is checked between stages
//
// Every step failure is fatal for the run. Recoverable problems, such as a
// malformed submission folder, are handled inside the steps and logged.
package pipeline
