package endpoint

const abstractSupported = true
