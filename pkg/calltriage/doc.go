// Package calltriage provides an emergency-call classification engine.
// It translates caller text to English, predicts an urgency label with a
// local ONNX model, routes the message to an emergency category, and
// optionally appends each classification to a CSV log.
//
// Quick start:
//
//	ct, err := calltriage.New(calltriage.WithModelDir("models/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ct.Close()
//
//	res, _ := ct.Classify(ctx, "There is a fire in my building", "13.0827,80.2707")
//	fmt.Println(res.Event.Category, res.Event.Priority) // Fire High
//
// The Triage instance loads the model once at creation — create once, reuse
// across requests.
package calltriage
