package dirpack_test

const atomicSupported = false
