package aggregate

// Exported for tests in package aggregate_test.
var DemoOffsets = demoOffsets

const DemoNoise = demoNoise
