// Package workflow sequences the export pipeline stages.
//
// Stage is a closed enumeration in execution order. Manager.Run walks a
// window of that order with a loop-local cursor: it runs the handler for the
// current stage, then advances with Stage.Next until the window or the
// enumeration ends. Stages never run concurrently, are never retried, and the
// first failure ends the run. Before the first stage the manager checks the
// inputs of every planned stage so that a doomed run does not wipe the output
// folder.
//
// Each run carries a correlation ID and every log line a stage emits is
// stamped with the stage name, so a single run can be followed through the
// log file. Tests swap individual handlers with WithStageHandler or the
// decompiler with WithExporter.
package workflow
